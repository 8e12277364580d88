package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"strings"
	"time"

	"mobileshop-backend/internal/timeutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jung-kurt/gofpdf/v2"
)

// ExportService renders date-ranged sales reports as CSV or PDF from
// read-only snapshots. When an R2 client is configured, every generated
// report is also archived to the bucket.
type ExportService struct {
	Orders   *OrderService
	Returns  *ReturnService
	Sellers  *SellerService
	R2Client *s3.Client
	R2Bucket string
}

func NewExportService(orders *OrderService, returns *ReturnService, sellers *SellerService, r2Client *s3.Client, r2Bucket string) *ExportService {
	return &ExportService{
		Orders:   orders,
		Returns:  returns,
		Sellers:  sellers,
		R2Client: r2Client,
		R2Bucket: r2Bucket,
	}
}

func (s *ExportService) OrdersCSV(ctx context.Context, fromStr, toStr string) ([]byte, error) {
	orders, err := s.Orders.ListOrders(ctx, fromStr, toStr)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{
		"#", "Order ID", "Customer", "Seller", "Warranty",
		"Qty", "Total Amount", "Total Profit", "Serials", "Date",
	})
	for i, o := range orders {
		serials := make([]string, 0, len(o.Items))
		for _, item := range o.Items {
			serials = append(serials, item.UnitSerial)
		}
		w.Write([]string{
			fmt.Sprintf("%d", i+1),
			o.UniqueID,
			o.CustomerName,
			o.SellerName,
			o.Warranty,
			fmt.Sprintf("%d", o.Quantity),
			fmt.Sprintf("%d", o.TotalAmount),
			fmt.Sprintf("%d", o.TotalProfit),
			strings.Join(serials, " "),
			o.CreatedAt.In(timeutil.IST).Format(timeutil.DateLayout),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	data := buf.Bytes()
	s.archive(ctx, "orders", "csv", data)
	return data, nil
}

func (s *ExportService) ReturnsCSV(ctx context.Context, fromStr, toStr string) ([]byte, error) {
	returns, err := s.Returns.ListReturns(ctx, fromStr, toStr)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"#", "Order ID", "Customer", "Reason", "Return Amount", "Date"})
	for i, ret := range returns {
		customer := ""
		orderID := fmt.Sprintf("%d", ret.CashOrderID)
		if ret.CashOrder != nil {
			customer = ret.CashOrder.CustomerName
			orderID = ret.CashOrder.UniqueID
		}
		w.Write([]string{
			fmt.Sprintf("%d", i+1),
			orderID,
			customer,
			ret.Reason,
			fmt.Sprintf("%d", ret.ReturnAmount),
			ret.CreatedAt.In(timeutil.IST).Format(timeutil.DateLayout),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	data := buf.Bytes()
	s.archive(ctx, "returns", "csv", data)
	return data, nil
}

func (s *ExportService) SellersCSV(ctx context.Context) ([]byte, error) {
	sellers, err := s.Sellers.ListSellers(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"#", "Username", "Profit", "Seller Share %", "Business Share %"})
	for i, seller := range sellers {
		w.Write([]string{
			fmt.Sprintf("%d", i+1),
			seller.Username,
			fmt.Sprintf("%d", seller.Profit),
			fmt.Sprintf("%d", seller.SellerShare),
			fmt.Sprintf("%d", seller.BusinessShare),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	data := buf.Bytes()
	s.archive(ctx, "sellers", "csv", data)
	return data, nil
}

func (s *ExportService) OrdersPDF(ctx context.Context, fromStr, toStr string) ([]byte, error) {
	orders, err := s.Orders.ListOrders(ctx, fromStr, toStr)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A4", "") // Landscape for more columns
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(277, 10, "Mobile Shop - Sales Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	rangeLabel := "all time"
	if fromStr != "" || toStr != "" {
		rangeLabel = fmt.Sprintf("%s to %s", orDefault(fromStr, "start"), orDefault(toStr, "today"))
	}
	pdf.CellFormat(277, 6, fmt.Sprintf("Range: %s | Generated: %s", rangeLabel,
		timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Table header
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(55, 7, "Order ID", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Customer", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Seller", "1", 0, "C", true, 0, "")
	pdf.CellFormat(15, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Amount", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Profit", "1", 0, "C", true, 0, "")
	pdf.CellFormat(57, 7, "Date", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	var totalAmount, totalProfit int64
	for _, o := range orders {
		customer := o.CustomerName
		if len(customer) > 25 {
			customer = customer[:22] + "..."
		}
		pdf.CellFormat(55, 6, o.UniqueID, "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 6, customer, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, o.SellerName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", o.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%d", o.TotalAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%d", o.TotalProfit), "1", 0, "R", false, 0, "")
		pdf.CellFormat(57, 6, o.CreatedAt.In(timeutil.IST).Format(timeutil.DisplayLayout), "1", 1, "C", false, 0, "")
		totalAmount += o.TotalAmount
		totalProfit += o.TotalProfit
	}

	// Totals row
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(150, 7, fmt.Sprintf("Total orders: %d", len(orders)), "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 7, fmt.Sprintf("%d", totalAmount), "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, fmt.Sprintf("%d", totalProfit), "1", 0, "R", true, 0, "")
	pdf.CellFormat(57, 7, "", "1", 1, "C", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	data := buf.Bytes()
	s.archive(ctx, "orders", "pdf", data)
	return data, nil
}

// archive uploads a generated report to R2. Failures are logged and
// swallowed: the caller still gets their report.
func (s *ExportService) archive(ctx context.Context, kind, ext string, data []byte) {
	if s.R2Client == nil || s.R2Bucket == "" {
		return
	}

	contentType := "text/csv"
	if ext == "pdf" {
		contentType = "application/pdf"
	}
	key := fmt.Sprintf("exports/%s/%s-%s.%s", kind, kind, timeutil.Now().Format("20060102-150405"), ext)

	uploadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.R2Client.PutObject(uploadCtx, &s3.PutObjectInput{
		Bucket:      aws.String(s.R2Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("[Export] R2 archive failed for %s: %v", key, err)
		return
	}
	log.Printf("[Export] Archived %s (%d bytes)", key, len(data))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
