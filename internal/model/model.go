// ABOUTME: Entity declarations for all dashboard collections
// ABOUTME: Struct tags are the single source of field rules shared by client and server

package model

// Record carries the store-assigned identifier every entity embeds.
// It serializes as "_id" so the dashboard client can reconcile rows on it.
// The identifier is opaque, immutable after creation, and never part of a
// create request body.
type Record struct {
	ID string `json:"_id,omitempty" toml:"-"`
}

// RecordID returns the store-assigned identifier.
func (r *Record) RecordID() string { return r.ID }

// SetRecordID sets the store-assigned identifier.
func (r *Record) SetRecordID(id string) { r.ID = id }

// Entity is implemented by every dashboard record type via the embedded Record.
type Entity interface {
	RecordID() string
	SetRecordID(id string)
}

// Doc constrains a type parameter to a pointer to an entity struct, so
// generic store and API code can allocate values and attach identifiers.
type Doc[T any] interface {
	*T
	Entity
}

// Access levels for team members.
const (
	AccessAdmin   = "Admin"
	AccessManager = "Manager"
	AccessUser    = "User"
)

// TeamMember is an internal staff record shown on the team grid.
type TeamMember struct {
	Record
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Age         int    `json:"age" validate:"required,gt=0"`
	Phone       string `json:"phone" validate:"required,phone"`
	AccessLevel string `json:"accessLevel" validate:"required,oneof=Admin Manager User"`
}

// Contact is an external contact record.
type Contact struct {
	Record
	RegistrarID int    `json:"registrarId" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Age         int    `json:"age" validate:"required,gt=0"`
	Phone       string `json:"phone" validate:"required,phone"`
	Address     string `json:"address" validate:"required"`
	City        string `json:"city" validate:"required"`
	ZipCode     string `json:"zipCode" validate:"required"`
}

// Invoice is a billing record. DueDate is a calendar date in YYYY-MM-DD form.
type Invoice struct {
	Record
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Cost    float64 `json:"cost" validate:"required,gt=0"`
	Phone   string  `json:"phone" validate:"required,phone"`
	DueDate string  `json:"dueDate" validate:"required,datetime=2006-01-02"`
}

// ProductStat is a per-year sales statistic owned by its product. Stats have
// no identity of their own and are replaced wholesale with the parent.
type ProductStat struct {
	YearlySalesTotal     *float64 `json:"yearlySalesTotal" validate:"required"`
	YearlyTotalSoldUnits *float64 `json:"yearlyTotalSoldUnits" validate:"required"`
}

// Product categories mirror the chart category keys.
var ProductCategories = []string{
	"Category_A", "Category_B", "Category_C",
	"Category_D", "Category_E", "Category_F",
}

// Product is a catalogue entry with its sales statistics.
// Rating is a pointer so a present zero rating passes "required" while an
// absent rating does not.
type Product struct {
	Record
	Name        string        `json:"name" validate:"required"`
	Price       float64       `json:"price" validate:"required,gt=0"`
	Description string        `json:"description" validate:"required"`
	Rating      *float64      `json:"rating" validate:"required,gte=0,lte=5"`
	Category    string        `json:"category" validate:"required,oneof=Category_A Category_B Category_C Category_D Category_E Category_F"`
	Supply      int           `json:"supply" validate:"required,gt=0"`
	Stat        []ProductStat `json:"stat" validate:"dive"`
}

// Event is a calendar entry.
type Event struct {
	Record
	Title string `json:"title" validate:"required"`
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
}

// BarEntry is one country row of the bar chart dataset. The six category
// values are pointers because zero is legitimate chart data.
type BarEntry struct {
	Record
	Country   string   `json:"country" validate:"required"`
	CategoryA *float64 `json:"Category_A" toml:"Category_A" validate:"required"`
	CategoryB *float64 `json:"Category_B" toml:"Category_B" validate:"required"`
	CategoryC *float64 `json:"Category_C" toml:"Category_C" validate:"required"`
	CategoryD *float64 `json:"Category_D" toml:"Category_D" validate:"required"`
	CategoryE *float64 `json:"Category_E" toml:"Category_E" validate:"required"`
	CategoryF *float64 `json:"Category_F" toml:"Category_F" validate:"required"`
}

// PieEntry is one slice of the pie chart dataset. Key is the chart's own
// series key, a plain data field distinct from the record identifier.
type PieEntry struct {
	Record
	Key   string   `json:"id" toml:"id" validate:"required"`
	Label string   `json:"label" validate:"required"`
	Value *float64 `json:"value" validate:"required"`
	Color string   `json:"color" validate:"required"`
}

// LinePoint is one x/y point owned by its line series.
type LinePoint struct {
	X string   `json:"x" validate:"required"`
	Y *float64 `json:"y" validate:"required"`
}

// LineEntry is one series of the line chart dataset.
type LineEntry struct {
	Record
	Key   string      `json:"id" toml:"id" validate:"required"`
	Color string      `json:"color" validate:"required"`
	Data  []LinePoint `json:"data" validate:"dive"`
}

// GeographyEntry maps a country code to a value for the choropleth.
type GeographyEntry struct {
	Record
	Key   string   `json:"id" toml:"id" validate:"required"`
	Value *float64 `json:"value" validate:"required"`
}
