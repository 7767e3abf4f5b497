package interfaces

import "taller_flota/internal/domain/entities"

// IReportExporter renders the order listing as a downloadable workbook.
type IReportExporter interface {
	ExportOrders(orders []entities.WorkOrder) ([]byte, error)
	ContentType() string
}
