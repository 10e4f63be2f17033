package lab

const (
	StatusOrdered   = "Ordered"
	StatusCompleted = "Completed"
)

const ListLimit = 200

// Test - позиция справочника анализов.
type Test struct {
	ID       int64
	Code     string
	Name     string
	Specimen *string
	Unit     *string
	RefRange *string
	IsActive bool
}

type Order struct {
	ID        int64
	USN       string
	OrderedAt string
	Status    string
	Notes     *string
}

// OrderLine - заказ, соединённый с одной из своих позиций и анализом.
type OrderLine struct {
	Order
	ItemID      int64
	Code        string
	Name        string
	ItemStatus  string
	ResultValue *string
	ResultAt    *string
}

type Result struct {
	ItemID int64
	Value  string
	Notes  *string
	At     string
}
