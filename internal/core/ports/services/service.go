package services

// ServiceContainer groups the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Entry     EntrySvcFacade
	Reporting ReportingSvcFacade
	Voucher   VoucherSvcFacade
	Catalog   CatalogSvcFacade
}
