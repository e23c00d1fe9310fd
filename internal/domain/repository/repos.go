package repository

// Repos agrupa los repositorios atados a un mismo Querier (pool o transacción).
type Repos struct {
	Categories     CategoryRepository
	Items          ItemRepository
	ItemLogs       ItemLogRepository
	Money          MoneyTransactionRepository
	Sessions       CashSessionRepository
	Sales          SaleRepository
	Warranties     WarrantyRepository
	Customers      CustomerRepository
	BankAccounts   BankAccountRepository
	PurchaseOrders PurchaseOrderRepository
	Assemblies     AssemblyRepository
	Adjustments    StockAdjustmentRepository
	Users          UserRepository
}
