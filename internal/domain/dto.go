package domain

// CustomerForm is the input accepted by the create form
type CustomerForm struct {
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=255"`
	PhoneNumber string `json:"phoneNumber" validate:"required,max=50"`
}

// EditCustomerForm is the input accepted by the edit form. The keys identify
// the record being edited and are never written back.
type EditCustomerForm struct {
	PartitionKey string `json:"partitionKey" validate:"required"`
	RowKey       string `json:"rowKey" validate:"required"`
	CustomerForm
}

// FormFromCustomer prefills an edit form from a stored record
func FormFromCustomer(c *Customer) EditCustomerForm {
	return EditCustomerForm{
		PartitionKey: c.PartitionKey,
		RowKey:       c.RowKey,
		CustomerForm: CustomerForm{
			FirstName:   c.FirstName,
			LastName:    c.LastName,
			Email:       c.Email,
			PhoneNumber: c.PhoneNumber,
		},
	}
}
