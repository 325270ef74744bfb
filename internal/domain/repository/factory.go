package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Orders() OrderRepository
	Stock() StockLedger
	Catalog() ProductCatalog
	Users() UserDirectory
	Drift() DriftJournal
}
