package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/billing"
	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/Shrey0428/ExoticBill/internal/domain/repository"
	"github.com/Shrey0428/ExoticBill/pkg/apperror"
	"github.com/Shrey0428/ExoticBill/pkg/printer"
	"github.com/Shrey0428/ExoticBill/pkg/utils"
	"github.com/shopspring/decimal"
)

// discountSeparator splits the pricing details from the membership discount note
const discountSeparator = " | "

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer      printer.Printer
	billRepo     repository.BillRepository
	employeeRepo repository.EmployeeRepository
	card         *billing.RateCard
	printerType  string
	shopName     string
	width        int
	loc          *time.Location
}

// PrinterOptions describes the configured printer and receipt layout
type PrinterOptions struct {
	Type     string
	ShopName string
	Width    int
	Location *time.Location
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	billRepo repository.BillRepository,
	employeeRepo repository.EmployeeRepository,
	card *billing.RateCard,
	opts PrinterOptions,
) *PrinterService {
	if opts.Width <= 0 {
		opts.Width = 32
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &PrinterService{
		printer:      p,
		billRepo:     billRepo,
		employeeRepo: employeeRepo,
		card:         card,
		printerType:  opts.Type,
		shopName:     opts.ShopName,
		width:        opts.Width,
		loc:          opts.Location,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// PrintBillReceipt prints a bill's receipt.
// The receipt is returned even when printing fails so the caller can show it instead.
func (s *PrinterService) PrintBillReceipt(ctx context.Context, billID uint) (*entity.Receipt, error) {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}

	employeeName := bill.EmployeeCID
	employee, err := s.employeeRepo.GetByCID(ctx, bill.EmployeeCID)
	if err != nil {
		return nil, err
	}
	if employee != nil {
		employeeName = fmt.Sprintf("%s (%s)", employee.Name, employee.CID)
	}

	receipt := s.BuildReceipt(bill, employeeName)

	data := FormatReceipt(receipt, s.width)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (bill %d): %v", bill.ID, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// BuildReceipt lays a bill out as printable lines
func (s *PrinterService) BuildReceipt(bill *entity.Bill, employeeName string) *entity.Receipt {
	details, discount, _ := strings.Cut(bill.Details, discountSeparator)

	receipt := &entity.Receipt{
		Header:      entity.ReceiptHeader{ShopName: s.shopName},
		BillNo:      utils.BillNumber(bill.ID),
		Date:        bill.BilledAt.In(s.loc).Format("2006-01-02 15:04"),
		Employee:    employeeName,
		Customer:    bill.CustomerCID,
		BillingType: bill.BillingType.String(),
		Discount:    discount,
		Total:       bill.TotalAmount.StringFixed(2),
	}

	if bill.BillingType == enum.BillingTypeItems {
		if lines, err := billing.ParseDetails(details); err == nil {
			for _, l := range lines {
				line := entity.ReceiptLine{Name: l.Name, Quantity: l.Qty}
				if item, ok := s.card.Item(l.Name); ok {
					line.Total = item.Price.Mul(decimal.NewFromInt(int64(l.Qty))).StringFixed(2)
				}
				receipt.Lines = append(receipt.Lines, line)
			}
		}
	}
	if len(receipt.Lines) == 0 {
		receipt.Lines = []entity.ReceiptLine{{Name: details, Quantity: 1}}
	}

	if bill.BillingType != enum.BillingTypeMembership {
		receipt.Points = s.card.Points(bill.TotalAmount)
	}
	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes for paper width characters wide.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.ShopName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Bill:", r.BillNo).
		KeyValue("Date:", r.Date).
		KeyValue("Type:", r.BillingType).
		KeyValue("Employee:", r.Employee).
		KeyValue("Customer:", r.Customer)

	doc.Separator('-')

	for _, line := range r.Lines {
		if line.Total != "" {
			doc.ItemLine(line.Quantity, line.Name, line.Total)
		} else {
			doc.Wrap(line.Name)
		}
	}

	if r.Discount != "" {
		doc.Separator('-').
			Wrap(r.Discount)
	}

	doc.Separator('-')

	doc.SetBold(true).
		KeyValue("TOTAL:", r.Total).
		SetBold(false)

	if r.Points > 0 {
		doc.KeyValue("Points earned:", fmt.Sprintf("%d", r.Points))
	}

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for choosing us!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
