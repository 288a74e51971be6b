package mail

type LeadAlertData struct {
	FullName     string
	City         string
	PropertyType string
	Phone        string
	Email        string
}

type ImportSummaryData struct {
	Inserted int
	Rejected int
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	NotifyTo string
}
