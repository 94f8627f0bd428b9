// Package contact implements the contact form: its field state, the
// simulated submission and where captured messages end up.
package contact

// Form holds the four contact fields. Binding only enforces presence, the
// same constraint the browser applies with required attributes.
type Form struct {
	Name    string `form:"name" json:"name" binding:"required"`
	Email   string `form:"email" json:"email" binding:"required"`
	Subject string `form:"subject" json:"subject" binding:"required"`
	Message string `form:"message" json:"message" binding:"required"`
}

// Empty reports whether every field is blank.
func (f Form) Empty() bool {
	return f == Form{}
}
