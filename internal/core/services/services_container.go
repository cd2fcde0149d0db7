package services

import (
	portsrepo "github.com/rajabalanj/poultry-ledger/internal/core/ports/repositories"
	portssvc "github.com/rajabalanj/poultry-ledger/internal/core/ports/services"
	"github.com/rajabalanj/poultry-ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Settings = NewSettingsService(repos.SettingsRepo, repos.AccountRepo, container.Account)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.ReportingRepo)
	container.Inventory = NewInventoryService(repos.InventoryRepo, repos.AuditRepo, cfg.EggStockTolerance)
	container.Posting = NewPostingService(container.Journal, container.Settings, container.Inventory, repos.AccountRepo, repos.EventRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.JournalRepo, repos.EventRepo, container.Settings, container.Posting)
	container.EggRoom = NewEggRoomService(repos.EggRoomRepo, repos.FlockRepo)
	container.Flock = NewFlockService(repos.FlockRepo, container.EggRoom)
	container.Standards = NewStandardsService(repos.StandardsRepo, container.Flock, cfg.StandardsCacheTTL)

	return container
}

// Compile-time checks that each service satisfies its facade.
var (
	_ portssvc.AccountSvcFacade   = (*AccountService)(nil)
	_ portssvc.SettingsSvc        = (*SettingsService)(nil)
	_ portssvc.JournalSvcFacade   = (*JournalService)(nil)
	_ portssvc.ReportingSvc       = (*ReportingService)(nil)
	_ portssvc.InventorySvcFacade = (*InventoryService)(nil)
	_ portssvc.PostingSvc         = (*PostingService)(nil)
	_ portssvc.EggRoomSvc         = (*EggRoomService)(nil)
	_ portssvc.FlockSvc           = (*FlockService)(nil)
	_ portssvc.StandardsSvc       = (*StandardsService)(nil)
)
