package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"github.com/productsuite/productsuite-api/models"
)

func TestBuildPedidosExcel(t *testing.T) {
	pedidos := []models.Pedido{
		{
			ID: 1, Telefono: "600000001", TipoPrenda: "camiseta", Talla: "M",
			Color: "rojo", Codigo: "CAM-001", Precio: 19.95, MetodoPago: "efectivo",
			Estado: "activo", Notas: "sin mangas", FechaEnvio: "2026-09-15",
			CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID: 2, Telefono: "600000002", TipoPrenda: "falda", Talla: "S",
			Color: "azul", Codigo: "FAL-002", Precio: 25, MetodoPago: "tarjeta",
			Estado: "entregado",
			CreatedAt: time.Date(2026, 8, 2, 11, 30, 0, 0, time.UTC),
		},
	}

	buf, err := BuildPedidosExcel(pedidos)
	assert.NoError(t, err)
	assert.NotNil(t, buf)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err, "Buffer must be a readable xlsx workbook")
	defer f.Close()

	rows, err := f.GetRows("Pedidos")
	assert.NoError(t, err)
	assert.Len(t, rows, 3, "Header plus one row per order")

	assert.Equal(t, "Teléfono", rows[0][1])
	assert.Equal(t, "600000001", rows[1][1])
	assert.Equal(t, "camiseta", rows[1][2])
	assert.Equal(t, "19.95", rows[1][6])
	assert.Equal(t, "600000002", rows[2][1])
	assert.Equal(t, "entregado", rows[2][8])
}

func TestBuildPedidosExcelEmpty(t *testing.T) {
	buf, err := BuildPedidosExcel(nil)
	assert.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Pedidos")
	assert.NoError(t, err)
	assert.Len(t, rows, 1, "Only the header row for an empty export")
}
