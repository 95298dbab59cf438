// Package config loads the dash-gateway YAML configuration.
//
// Configuration is resolved from a single file, located via DefaultPath:
// $DASH_CONFIG when set, otherwise config.yaml under the XDG config
// directory. Values of the form ${VAR_NAME} are expanded from the
// environment before parsing, so credentials can stay out of the file:
//
//	server:
//	  http_addr: ":8080"
//	  shutdown_timeout: "10s"
//	store:
//	  backend: "surreal"
//	  url: "http://localhost:8000"
//	  namespace: "dash"
//	  database: "dash"
//	  user: "${SURREAL_USER}"
//	  pass: "${SURREAL_PASS}"
//	cors:
//	  allowed_origins:
//	    - "http://localhost:3000"
//	logging:
//	  level: "info"
//	  format: "json"
//
// Missing sections fall back to Default: a local listener over a sqlite
// database in the XDG data directory. Load validates the result and
// rejects unknown backends and malformed durations up front.
package config
