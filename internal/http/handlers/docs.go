package handlers

import (
	"fmt"
	"net/http"

	"backend/internal/http/middleware"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

// GetBusETicketPDF streams the e-ticket for a confirmed bus booking.
func (a *API) GetBusETicketPDF(c *gin.Context) {
	svc := services.DocsService{Store: a.Store, RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.BusETicket(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	servePDF(c, pdfBytes, filename)
}

// GetOrderInvoicePDF streams the invoice for a placed food order.
func (a *API) GetOrderInvoicePDF(c *gin.Context) {
	svc := services.DocsService{Store: a.Store, RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.OrderInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	servePDF(c, pdfBytes, filename)
}

func servePDF(c *gin.Context, pdfBytes []byte, filename string) {
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
