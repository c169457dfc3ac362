package services

import (
	portsrepo "github.com/SscSPs/voucher_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/voucher_engine/internal/core/ports/services"
	"github.com/SscSPs/voucher_engine/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, m *metrics.Metrics) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account: NewAccountService(repos.AccountRepo),
		Voucher: NewVoucherService(repos.VoucherRepo, repos.AccountRepo, WithVoucherMetrics(m)),
		Ledger:  NewLedgerService(repos.AccountRepo, repos.VoucherRepo),
	}
}
