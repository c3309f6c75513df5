package services

import (
	portsrepo "github.com/hendrawijaya/pembukuan_app/internal/core/ports/repositories"
	portssvc "github.com/hendrawijaya/pembukuan_app/internal/core/ports/services"
)

// NewServiceContainer wires every service with its repository dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:     NewAccountService(repos.AccountRepo),
		Template:    NewTemplateService(repos.TemplateRepo, repos.AccountRepo),
		Transaction: NewTransactionService(repos.TransactionRepo, repos.SequenceRepo, repos.AccountRepo, repos.TemplateRepo),
	}
}
