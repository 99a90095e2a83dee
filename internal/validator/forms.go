package validator

// Form is implemented by every screen that collects input.
type Form interface {
	Fields() []Field
	Value(f Field) string
	Set(f Field, v string) error
	// ValidateField returns the field's error message, or "".
	ValidateField(f Field) string
	// Dependents lists fields whose validity depends on f.
	Dependents(f Field) []Field
}

// Validate runs every field rule of form.
func Validate(form Form) FieldErrors {
	errs := FieldErrors{}
	for _, f := range form.Fields() {
		if msg := form.ValidateField(f); msg != "" {
			errs[f] = msg
		}
	}
	return errs
}

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f *LoginForm) Fields() []Field {
	return []Field{FieldEmail, FieldPassword}
}

func (f *LoginForm) Value(field Field) string {
	switch field {
	case FieldEmail:
		return f.Email
	case FieldPassword:
		return f.Password
	}
	return ""
}

func (f *LoginForm) Set(field Field, v string) error {
	switch field {
	case FieldEmail:
		f.Email = v
	case FieldPassword:
		f.Password = v
	default:
		return ErrUnknownField
	}
	return nil
}

func (f *LoginForm) ValidateField(field Field) string {
	switch field {
	case FieldEmail:
		return checkEmail(f.Email)
	case FieldPassword:
		if f.Password == "" {
			return "Password is required"
		}
		if len(f.Password) < 6 {
			return "Password must be at least 6 characters long"
		}
	}
	return ""
}

func (f *LoginForm) Dependents(Field) []Field { return nil }

type SignupForm struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (f *SignupForm) Fields() []Field {
	return []Field{FieldFirstName, FieldLastName, FieldEmail, FieldPassword, FieldConfirmPassword}
}

func (f *SignupForm) Value(field Field) string {
	switch field {
	case FieldFirstName:
		return f.FirstName
	case FieldLastName:
		return f.LastName
	case FieldEmail:
		return f.Email
	case FieldPassword:
		return f.Password
	case FieldConfirmPassword:
		return f.ConfirmPassword
	}
	return ""
}

func (f *SignupForm) Set(field Field, v string) error {
	switch field {
	case FieldFirstName:
		f.FirstName = v
	case FieldLastName:
		f.LastName = v
	case FieldEmail:
		f.Email = v
	case FieldPassword:
		f.Password = v
	case FieldConfirmPassword:
		f.ConfirmPassword = v
	default:
		return ErrUnknownField
	}
	return nil
}

func (f *SignupForm) ValidateField(field Field) string {
	switch field {
	case FieldFirstName:
		return checkPersonName("First name", f.FirstName)
	case FieldLastName:
		return checkPersonName("Last name", f.LastName)
	case FieldEmail:
		return checkEmail(f.Email)
	case FieldPassword:
		if f.Password == "" {
			return "Password is required"
		}
		if PasswordStrength(f.Password) < len(PasswordRequirements) {
			return "Password must meet all requirements"
		}
	case FieldConfirmPassword:
		if f.ConfirmPassword == "" {
			return "Please confirm your password"
		}
		if f.ConfirmPassword != f.Password {
			return "Passwords do not match"
		}
	}
	return ""
}

func (f *SignupForm) Dependents(field Field) []Field {
	if field == FieldPassword {
		return []Field{FieldConfirmPassword}
	}
	return nil
}

// PaymentForm is the mock checkout form. Nothing here is charged.
type PaymentForm struct {
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	ZipCode    string `json:"zip_code"`
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
	CardName   string `json:"card_name"`
}

var paymentLabels = map[Field]string{
	FieldEmail:      "Email",
	FieldFirstName:  "First name",
	FieldLastName:   "Last name",
	FieldAddress:    "Street address",
	FieldCity:       "City",
	FieldZipCode:    "ZIP code",
	FieldCardNumber: "Card number",
	FieldExpiryDate: "Expiry date",
	FieldCVV:        "CVV",
	FieldCardName:   "Name on card",
}

func (f *PaymentForm) Fields() []Field {
	return []Field{
		FieldEmail, FieldFirstName, FieldLastName, FieldAddress, FieldCity,
		FieldZipCode, FieldCardNumber, FieldCardName, FieldExpiryDate, FieldCVV,
	}
}

func (f *PaymentForm) ptr(field Field) *string {
	switch field {
	case FieldEmail:
		return &f.Email
	case FieldFirstName:
		return &f.FirstName
	case FieldLastName:
		return &f.LastName
	case FieldAddress:
		return &f.Address
	case FieldCity:
		return &f.City
	case FieldZipCode:
		return &f.ZipCode
	case FieldCardNumber:
		return &f.CardNumber
	case FieldExpiryDate:
		return &f.ExpiryDate
	case FieldCVV:
		return &f.CVV
	case FieldCardName:
		return &f.CardName
	}
	return nil
}

func (f *PaymentForm) Value(field Field) string {
	if p := f.ptr(field); p != nil {
		return *p
	}
	return ""
}

func (f *PaymentForm) Set(field Field, v string) error {
	p := f.ptr(field)
	if p == nil {
		return ErrUnknownField
	}
	*p = v
	return nil
}

func (f *PaymentForm) ValidateField(field Field) string {
	if field == FieldEmail {
		return checkEmail(f.Email)
	}
	label, ok := paymentLabels[field]
	if !ok {
		return ""
	}
	return checkRequired(label, f.Value(field))
}

func (f *PaymentForm) Dependents(Field) []Field { return nil }
