// Package export renders admin spreadsheets.
package export

import (
	"time"

	"neighborhood/internal/domain/entity"
	"neighborhood/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the business export workbook.
const (
	SheetApplications = "Applications"
	SheetShops        = "Shops"
	defaultSheet      = "Sheet1"
	dateLayout        = "2006-01-02 15:04"
)

var (
	applicationHeader = []any{"Business Name", "Owner Name", "Contact Number", "Category", "Address", "Status", "Proof", "Submitted At"}
	shopHeader        = []any{"Shop Name", "Owner", "Owner Email", "Category", "Address", "Contact Number", "Rating", "Latitude", "Longitude", "Created At"}
)

type excelExporter struct{}

// NewExcelExporter returns the xlsx business exporter.
func NewExcelExporter() service.BusinessExporter {
	return excelExporter{}
}

// ExportBusinesses writes applications and shops to separate sheets.
func (excelExporter) ExportBusinesses(apps []*entity.SellerApplication, shops []*entity.ShopWithOwner) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	appRows := make([][]any, 0, len(apps))
	for _, a := range apps {
		appRows = append(appRows, []any{
			a.BusinessName, a.OwnerName, a.ContactNumber, a.Category, a.Address,
			a.Status.String(), a.ProofURL, formatTime(a.CreatedAt),
		})
	}

	shopRows := make([][]any, 0, len(shops))
	for _, s := range shops {
		shopRows = append(shopRows, []any{
			s.Name, s.OwnerName, s.OwnerEmail, s.Category, s.Address, s.ContactNumber,
			s.Rating, s.Latitude, s.Longitude, formatTime(s.CreatedAt),
		})
	}

	if err := writeSheet(f, SheetApplications, applicationHeader, appRows); err != nil {
		return nil, err
	}
	if err := writeSheet(f, SheetShops, shopHeader, shopRows); err != nil {
		return nil, err
	}
	if err := f.DeleteSheet(defaultSheet); err != nil {
		return nil, errors.Wrap(err, "delete default sheet")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}

	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, name string, header []any, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return errors.Wrapf(err, "create sheet %s", name)
	}

	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return errors.Wrapf(err, "write %s header", name)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.WithStack(err)
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return errors.Wrapf(err, "write %s row %d", name, i+1)
		}
	}

	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(dateLayout)
}
