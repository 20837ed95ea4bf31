package invoice

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/pkg/view"
)

// Layout constants in base pixels (A4 width at 96dpi). The download control
// lives only in the HTML page, so it never appears in the capture.
const (
	baseWidth  = 794.0
	marginX    = 48.0
	rowHeight  = 30.0
	tableTop   = 330.0
	footerPad  = 120.0
	rulerColor = 0.85
)

func newFace(ttf []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 96, Hinting: font.HintingFull})
}

// captureInvoice draws the invoice layout onto a raster image. scale behaves
// like snapshotting the source view at that zoom factor.
func captureInvoice(inv view.InvoiceDetail, scale float64) (image.Image, error) {
	if scale <= 0 {
		scale = 1
	}

	titleFace, err := newFace(gobold.TTF, 26)
	if err != nil {
		return nil, err
	}
	boldFace, err := newFace(gobold.TTF, 14)
	if err != nil {
		return nil, err
	}
	textFace, err := newFace(goregular.TTF, 14)
	if err != nil {
		return nil, err
	}
	smallFace, err := newFace(goregular.TTF, 12)
	if err != nil {
		return nil, err
	}

	tableBottom := tableTop + rowHeight*float64(len(inv.Rows)+2)
	height := tableBottom + footerPad

	dc := gg.NewContext(int(baseWidth*scale), int(height*scale))
	dc.Scale(scale, scale)

	// White background, like the source capture forced.
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0.1, 0.1, 0.1)

	// Header
	dc.SetFontFace(titleFace)
	dc.DrawString(fmt.Sprintf("Orden #%d", inv.OrderID), marginX, 70)
	dc.SetFontFace(smallFace)
	dc.SetRGB(0.4, 0.4, 0.4)
	dc.DrawString("Fecha: "+inv.Date, marginX, 94)

	// Customer block
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.SetFontFace(boldFace)
	dc.DrawString("Cliente:", marginX, 140)
	dc.DrawString("Email:", marginX, 162)
	dc.SetFontFace(textFace)
	dc.DrawString(inv.CustomerName, marginX+70, 140)
	dc.DrawString(inv.CustomerEmail, marginX+70, 162)

	// Payment block
	dc.SetFontFace(boldFace)
	dc.DrawString("Estado:", marginX, 208)
	dc.DrawString("ID de Pago:", marginX, 230)
	dc.SetFontFace(textFace)
	dc.DrawString(inv.Status, marginX+70, 208)
	dc.DrawString(inv.PaymentGatewayID, marginX+100, 230)

	// Items table
	dc.SetFontFace(boldFace)
	dc.DrawString("Productos Comprados", marginX, 286)

	colProduct := marginX
	colQty := 440.0
	colUnit := 580.0
	colSub := baseWidth - marginX

	y := tableTop
	dc.DrawString("Producto", colProduct, y)
	dc.DrawStringAnchored("Cantidad", colQty, y, 1, 0)
	dc.DrawStringAnchored("Precio Unitario", colUnit, y, 1, 0)
	dc.DrawStringAnchored("Subtotal", colSub, y, 1, 0)
	dc.SetRGB(rulerColor, rulerColor, rulerColor)
	dc.DrawLine(marginX, y+10, baseWidth-marginX, y+10)
	dc.Stroke()

	dc.SetFontFace(textFace)
	for _, row := range inv.Rows {
		y += rowHeight
		dc.SetRGB(0.15, 0.15, 0.15)
		dc.DrawString(row.ProductName, colProduct, y)
		dc.DrawStringAnchored(fmt.Sprintf("%d", row.Quantity), colQty, y, 1, 0)
		dc.DrawStringAnchored(row.UnitPrice, colUnit, y, 1, 0)
		dc.DrawStringAnchored(row.Subtotal, colSub, y, 1, 0)
		dc.SetRGB(rulerColor, rulerColor, rulerColor)
		dc.DrawLine(marginX, y+10, baseWidth-marginX, y+10)
		dc.Stroke()
	}

	// Footer: server-provided total, shown verbatim.
	y += rowHeight
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.SetFontFace(boldFace)
	dc.DrawStringAnchored("Total Pagado:", colUnit, y, 1, 0)
	dc.DrawStringAnchored(inv.Total, colSub, y, 1, 0)

	dc.SetFontFace(smallFace)
	dc.SetRGB(0.4, 0.4, 0.4)
	dc.DrawStringAnchored("Gracias por su compra en GamerStore - Genezis.", baseWidth/2, height-48, 0.5, 0)

	return dc.Image(), nil
}
