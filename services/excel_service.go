package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/productsuite/productsuite-api/models"
)

// ExcelContentType is the MIME type of the generated workbook.
const ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const pedidosSheet = "Pedidos"

var pedidosHeaders = []string{
	"ID", "Teléfono", "Tipo de prenda", "Talla", "Color", "Código",
	"Precio", "Método de pago", "Estado", "Notas", "Fecha de envío", "Fecha",
}

// BuildPedidosExcel serializes the given orders into an xlsx workbook and
// returns the binary buffer. One row per order, in the order received.
func BuildPedidosExcel(pedidos []models.Pedido) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", pedidosSheet)

	for i, h := range pedidosHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("building header cell: %w", err)
		}
		if err := f.SetCellValue(pedidosSheet, cell, h); err != nil {
			return nil, fmt.Errorf("writing header cell: %w", err)
		}
	}

	for rowIdx, p := range pedidos {
		values := []interface{}{
			p.ID, p.Telefono, p.TipoPrenda, p.Talla, p.Color, p.Codigo,
			p.Precio, p.MetodoPago, p.Estado, p.Notas, p.FechaEnvio,
			p.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("building cell for row %d: %w", rowIdx+2, err)
			}
			if err := f.SetCellValue(pedidosSheet, cell, v); err != nil {
				return nil, fmt.Errorf("writing cell for row %d: %w", rowIdx+2, err)
			}
		}
	}

	// Widen the phone and notes columns so the sheet is readable as-is
	if err := f.SetColWidth(pedidosSheet, "B", "B", 16); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(pedidosSheet, "J", "J", 30); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf, nil
}
