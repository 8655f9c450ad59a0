package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/vyanhpham/rosea-backend/internal/app/model"
	"github.com/vyanhpham/rosea-backend/internal/app/repository"
	"github.com/vyanhpham/rosea-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Orders"

var exportHeaders = []string{
	"Order Number", "Status", "Customer", "Phone", "Email",
	"Shipping Address", "Items", "Subtotal", "Shipping", "Discount",
	"Total", "Notes", "Created At",
}

// ExportOrders renders every order into a single-sheet xlsx workbook,
// newest first, one row per order with line items flattened into a cell.
func (s *orderService) ExportOrders() ([]byte, error) {
	orders, _, err := s.orderRepo.FindWithFilter(repository.OrderFilter{
		Limit: repository.MaxPageSize * 100,
	})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for col, title := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(exportSheet, cell, title)
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(exportSheet, "A1", endHeader, headerStyle)

	for i, order := range orders {
		row := i + 2
		values := []interface{}{
			order.OrderNumber,
			string(order.Status),
			order.CustomerName,
			order.CustomerPhone,
			order.CustomerEmail,
			order.ShippingAddress,
			formatOrderItems(order.Items),
			order.Subtotal,
			order.ShippingCost,
			order.Discount,
			order.Total,
			order.Notes,
			order.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(exportSheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		logger.Error("Failed to write order export", err)
		return nil, err
	}

	logger.Info("Exported orders to xlsx", map[string]interface{}{
		"order_count": len(orders),
	})
	return buf.Bytes(), nil
}

func formatOrderItems(items []model.OrderItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		name := item.ProductName
		if item.VariantName != "" {
			name = fmt.Sprintf("%s (%s)", name, item.VariantName)
		}
		lines = append(lines, fmt.Sprintf("%s x%d @ %d", name, item.Quantity, item.Price))
	}
	return strings.Join(lines, "\n")
}
