package spots

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"waydown/db"
	"waydown/globals"
	"waydown/models"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

var shareSecret = []byte(shareSecretFromEnv())

func shareSecretFromEnv() string {
	if v := os.Getenv("SHARE_SECRET"); v != "" {
		return v
	}
	return "dev-share-secret"
}

func shareBaseURL() string {
	if v := os.Getenv("SHARE_BASE_URL"); v != "" {
		return v
	}
	return "https://waydown.app/spot/"
}

// SignSharePayload binds a spot ID to an HMAC so shared links can be verified offline.
func SignSharePayload(spotID string) string {
	h := hmac.New(sha256.New, shareSecret)
	h.Write([]byte(spotID))
	sig := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", spotID, sig)
}

// VerifySharePayload checks an HMAC-signed payload and returns the spot ID.
func VerifySharePayload(payload string) (string, bool) {
	idx := strings.LastIndex(payload, "|")
	if idx <= 0 {
		return "", false
	}
	spotID, sig := payload[:idx], payload[idx+1:]

	h := hmac.New(sha256.New, shareSecret)
	h.Write([]byte(spotID))
	expected := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return "", false
	}
	return spotID, true
}

// ShareSpotQR returns a PNG QR code pointing at the public spot page.
func ShareSpotQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	spotID := ps.ByName("spotid")

	var spot models.Spot
	if err := db.SpotsCollection.FindOne(context.TODO(), bson.M{"spotid": spotID, "status": models.SpotApproved}).Decode(&spot); err != nil {
		http.Error(w, "Spot not found", http.StatusNotFound)
		return
	}

	payload := shareBaseURL() + spotID + "?sig=" + SignSharePayload(spotID)
	qrPNG, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(qrPNG)
}

// ExportTripSheet renders the caller's saved spots as a printable PDF, one
// block per spot with a share QR code.
func ExportTripSheet(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	spots, err := savedSpotsFor(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to fetch saved spots", http.StatusInternalServerError)
		return
	}
	if len(spots) == 0 {
		http.Error(w, "No saved spots to export", http.StatusNotFound)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Waydown trip sheet", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Waydown trip sheet")
	pdf.Ln(16)

	for i, spot := range spots {
		if i > 0 && pdf.GetY() > 230 {
			pdf.AddPage()
		}

		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, spot.Name)
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "", 10)
		location := spot.Address
		if spot.City != "" {
			location += ", " + spot.City
		}
		if spot.Country != "" {
			location += ", " + spot.Country
		}
		pdf.MultiCell(130, 5, location, "", "L", false)
		pdf.MultiCell(130, 5, spot.Description, "", "L", false)

		payload := shareBaseURL() + spot.SpotID + "?sig=" + SignSharePayload(spot.SpotID)
		qrPNG, err := qrcode.Encode(payload, qrcode.Medium, 128)
		if err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			name := "qr-" + spot.SpotID
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(qrPNG))
			pdf.ImageOptions(name, 160, pdf.GetY()-20, 30, 30, false, opts, 0, "")
		}
		pdf.Ln(12)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to render PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="waydown-trip-sheet.pdf"`)
	w.Write(buf.Bytes())
}
