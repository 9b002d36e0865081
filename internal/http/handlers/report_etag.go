package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/geocoder89/eventdesk/internal/registry"
	"github.com/gin-gonic/gin"
)

// reportETag fingerprints what a report shows: the event's details, its seat
// counts and the booked attendees in booking order. Two reports with the same
// tag render the same body.
func reportETag(rep registry.Report) string {
	h := sha256.New()

	e := rep.Event
	for _, field := range []string{e.ID, e.Title, e.Description, e.Date, e.Time, e.Venue, e.Category} {
		writeField(h, field)
	}
	fmt.Fprintf(h, "%d/%d/%d\x00", rep.Capacity, rep.Occupied, rep.AvailableSeats)

	for _, a := range rep.Attendees {
		writeField(h, a.ID)
		writeField(h, a.Name)
		writeField(h, a.Email)
		writeField(h, a.Phone)
	}

	return `"rep-` + hex.EncodeToString(h.Sum(nil)[:16]) + `"`
}

// writeField length-prefixes s so adjacent fields cannot run together.
func writeField(w io.Writer, s string) {
	fmt.Fprintf(w, "%d:%s\x00", len(s), s)
}

// respondReport sends rep with its ETag, or 304 when the client already holds it.
func respondReport(ctx *gin.Context, rep registry.Report) {
	etag := reportETag(rep)
	ctx.Header("ETag", etag)

	if etagMatches(ctx.GetHeader("If-None-Match"), etag) {
		ctx.Status(http.StatusNotModified)
		return
	}

	ctx.JSON(http.StatusOK, rep)
}

func etagMatches(header, current string) bool {
	header = strings.TrimSpace(header)
	if header == "" {
		return false
	}
	if header == "*" {
		return true
	}

	for _, part := range strings.Split(header, ",") {
		// weak validators (W/"...") compare equal to their strong form
		tag := strings.TrimPrefix(strings.TrimSpace(part), "W/")
		if tag == current {
			return true
		}
	}

	return false
}
