package services

import (
	portsrepo "github.com/TyroGames/api-sub001/internal/core/ports/repositories"
	portssvc "github.com/TyroGames/api-sub001/internal/core/ports/services"
)

// NewServiceContainer wires the repositories into the service facades.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, lineBuilders map[string]LineBuilder) *portssvc.ServiceContainer {
	entrySvc := NewEntryService(repos.EntryRepo, repos.SequenceRepo, repos.AccountRepo, repos.FiscalPeriodRepo)
	return &portssvc.ServiceContainer{
		Entry:     entrySvc,
		Reporting: NewReportingService(repos.ReportingRepo, repos.AccountRepo),
		Voucher:   NewVoucherService(repos.DocumentRepo, entrySvc, lineBuilders),
		Catalog:   NewCatalogService(repos.AccountRepo, repos.SequenceRepo, repos.FiscalPeriodRepo),
	}
}
