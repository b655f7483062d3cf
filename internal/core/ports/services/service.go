package services

// ServiceContainer aggregates the service facades handed to the HTTP layer
type ServiceContainer struct {
	Posting   PostingSvcFacade
	Account   AccountSvcFacade
	Reporting ReportingSvc
}
