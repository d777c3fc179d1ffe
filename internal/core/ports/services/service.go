package services

// ServiceContainer bundles the service facades handed to route registration.
type ServiceContainer struct {
	User        UserSvcFacade
	Ledger      LedgerSvcFacade
	Course      CourseSvcFacade
	Quiz        QuizSvcFacade
	Certificate CertificateSvcFacade
	Reporting   ReportingSvcFacade
}
