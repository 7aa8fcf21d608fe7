package admin

import (
	"bytes"
	"fmt"
	"log"
	"net/http"

	"warungku/backend"
	"warungku/middleware"
	"warungku/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// OrderReport renders the current order list as a printable PDF for the
// kitchen pass.
func (h *Handlers) OrderReport(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	s, _ := middleware.SessionFrom(ctx)
	token, _ := s.Credential(ctx)

	orders, err := h.API.AllOrders(ctx, token)
	if err != nil {
		if backend.IsAuthFailure(err) {
			middleware.ForceLogout(w, r, s)
			return
		}
		log.Println("Admin OrderReport error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to fetch orders")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Daftar Pesanan")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(20, 8, "Order", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, "Antrean", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, "Meja", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 8, "Pemesan", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, "Status", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Total", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, o := range orders {
		pdf.CellFormat(20, 8, fmt.Sprintf("#%d", o.OrderID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", o.QueueNumber), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", o.TableNumber), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 8, o.Customer.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 8, o.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 8, utils.FormatRupiah(o.TotalPrice), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Println("Admin OrderReport PDF error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=daftar-pesanan.pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// TableQRSheet prints one QR code per table, each linking to the catalog
// with the table number pre-filled, for laminating onto the tables.
func (h *Handlers) TableQRSheet(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	count := utils.QueryInt(r, "count", 12)
	if count < 1 || count > 100 {
		utils.RespondWithError(w, http.StatusBadRequest, "count must be between 1 and 100")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}

	const perRow, cell = 3, 60.0
	for i := 0; i < count; i++ {
		if i%(perRow*4) == 0 {
			pdf.AddPage()
		}
		table := i + 1
		target := fmt.Sprintf("%s/catalog?table=%d", h.CatalogBase, table)

		qrPNG, err := qrcode.Encode(target, qrcode.Medium, 256)
		if err != nil {
			log.Println("Admin TableQRSheet QR error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
			return
		}

		col := i % perRow
		row := (i / perRow) % 4
		x := 15 + float64(col)*cell
		y := 15 + float64(row)*cell

		name := fmt.Sprintf("table-%d", table)
		pdf.RegisterImageOptionsReader(name, imageOpts, bytes.NewReader(qrPNG))
		pdf.ImageOptions(name, x, y, 40, 40, false, imageOpts, 0, "")
		pdf.SetFont("Arial", "B", 11)
		pdf.SetXY(x, y+42)
		pdf.CellFormat(40, 6, fmt.Sprintf("Meja %d", table), "", 0, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Println("Admin TableQRSheet PDF error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=meja-qr.pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
