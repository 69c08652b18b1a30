package domain

// Category represents the data category a record belongs to.
type Category string

const (
	CategoryInvestment Category = "INVESTMENT"
	CategoryEvent      Category = "EVENT"
)

// String returns the string representation of Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is a valid value.
func (c Category) IsValid() bool {
	return c == CategoryInvestment || c == CategoryEvent
}

// Categories returns all valid categories in a fixed order.
func Categories() []Category {
	return []Category{CategoryInvestment, CategoryEvent}
}
