package model

// ClinicInfo holds the clinic identity shown to patients.
type ClinicInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// ClinicHours are the clinic-wide opening hours.
type ClinicHours struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Saturday bool   `json:"saturday"`
	Sunday   bool   `json:"sunday"`
}

// ClinicAddress is the clinic street address.
type ClinicAddress struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
}

// ClinicContacts are the clinic contact channels.
type ClinicContacts struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp,omitempty"`
	Website  string `json:"website,omitempty"`
}

// CustomHour overrides the clinic hours for a weekday or a single date.
type CustomHour struct {
	ID     string `json:"id"`
	Type   string `json:"type"`   // "weekday" or "date"
	Target string `json:"target"` // weekday key or "YYYY-MM-DD"
	Start  string `json:"start"`
	End    string `json:"end"`
	Closed bool   `json:"closed"`
}

// ClinicConfig aggregates all clinic management documents.
type ClinicConfig struct {
	Info        ClinicInfo     `json:"info"`
	Hours       ClinicHours    `json:"hours"`
	Address     ClinicAddress  `json:"address"`
	Contacts    ClinicContacts `json:"contacts"`
	CustomHours []CustomHour   `json:"custom_hours,omitempty"`
}
