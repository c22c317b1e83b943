package services

import (
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/models"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/storage"
)

// SyncResult is the outcome of reconciling one calendar connection.
type SyncResult struct {
	Imported  int      `json:"imported"`
	Conflicts int      `json:"conflicts"`
	Errors    []string `json:"errors"`
}

// ConnectionSyncResult pairs a SyncResult with the connection it belongs to
// in the batch response.
type ConnectionSyncResult struct {
	ConnectionID uint     `json:"connectionID"`
	Platform     string   `json:"platform"`
	Imported     int      `json:"imported"`
	Conflicts    int      `json:"conflicts"`
	Errors       []string `json:"errors"`
}

// BatchSyncResult aggregates a sync run across all active connections.
type BatchSyncResult struct {
	TotalImported  int                    `json:"totalImported"`
	TotalConflicts int                    `json:"totalConflicts"`
	Results        []ConnectionSyncResult `json:"results"`
}

var feedClient = &http.Client{Timeout: 20 * time.Second}

// SyncConnection reconciles one calendar connection: fetches its feed,
// deduplicates against already-imported bookings by external id, detects
// date-range conflicts, and inserts net-new bookings. The connection's sync
// status fields are updated to reflect the outcome.
func SyncConnection(conn *models.CalendarConnection) SyncResult {
	result := SyncResult{Errors: []string{}}

	storage.DB.Model(conn).Updates(map[string]interface{}{
		"sync_status": models.SyncStatusSyncing,
		"last_error":  "",
	})

	feedText, err := fetchFeed(conn.ICalURL)
	if err != nil {
		msg := fmt.Sprintf("feed fetch failed: %v", err)
		result.Errors = append(result.Errors, msg)
		markSyncError(conn, msg)
		return result
	}

	events := ParseFeed(feedText)

	var existing []models.Booking
	if err := storage.DB.Where("property_id = ?", conn.PropertyID).Find(&existing).Error; err != nil {
		msg := fmt.Sprintf("loading bookings failed: %v", err)
		result.Errors = append(result.Errors, msg)
		markSyncError(conn, msg)
		return result
	}

	imported := make(map[string]bool)
	for _, b := range existing {
		if b.ExternalID != nil {
			imported[*b.ExternalID] = true
		}
	}

	for _, event := range events {
		if event.Status == EventStatusCancelled {
			continue
		}
		// Re-syncing an already imported event is a no-op.
		if imported[event.UID] {
			continue
		}
		if hasOverlap(existing, event.Start, event.End) {
			result.Conflicts++
			continue
		}

		room, err := resolveTargetRoom(conn)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("event %s skipped: %v", event.UID, err))
			continue
		}

		nights := int(math.Ceil(event.End.Sub(event.Start).Seconds() / 86400))
		if nights < 1 {
			nights = 1
		}
		var amount float64
		if room.CurrentPrice != nil {
			amount = *room.CurrentPrice * float64(nights)
		}

		uid := event.UID
		booking := models.Booking{
			RoomID:      room.ID,
			PropertyID:  conn.PropertyID,
			GuestName:   event.Summary,
			CheckIn:     event.Start,
			CheckOut:    event.End,
			Nights:      nights,
			Status:      models.BookingStatusConfirmed,
			Source:      conn.Platform,
			ExternalID:  &uid,
			TotalAmount: amount,
		}
		if err := storage.DB.Create(&booking).Error; err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("event %s insert failed: %v", event.UID, err))
			continue
		}

		imported[uid] = true
		existing = append(existing, booking)
		result.Imported++
	}

	if len(result.Errors) > 0 {
		markSyncError(conn, result.Errors[0])
		return result
	}

	now := time.Now()
	storage.DB.Model(conn).Updates(map[string]interface{}{
		"sync_status":     models.SyncStatusSuccess,
		"last_sync_at":    &now,
		"last_sync_count": result.Imported,
		"last_error":      "",
	})
	return result
}

// SyncAllConnections reconciles every active connection independently; a
// failure in one never aborts the others.
func SyncAllConnections() BatchSyncResult {
	batch := BatchSyncResult{Results: []ConnectionSyncResult{}}

	var connections []models.CalendarConnection
	if err := storage.DB.Where("is_active = ?", true).Find(&connections).Error; err != nil {
		log.Println("calendar sync: loading connections failed:", err)
		return batch
	}

	for i := range connections {
		conn := &connections[i]
		res := SyncConnection(conn)
		batch.TotalImported += res.Imported
		batch.TotalConflicts += res.Conflicts
		batch.Results = append(batch.Results, ConnectionSyncResult{
			ConnectionID: conn.ID,
			Platform:     conn.Platform,
			Imported:     res.Imported,
			Conflicts:    res.Conflicts,
			Errors:       res.Errors,
		})
	}
	return batch
}

func fetchFeed(url string) (string, error) {
	resp, err := feedClient.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// hasOverlap tests the half-open interval [start, end) against every
// non-cancelled booking.
func hasOverlap(bookings []models.Booking, start, end time.Time) bool {
	for i := range bookings {
		if bookings[i].Status == models.BookingStatusCancelled {
			continue
		}
		if bookings[i].Overlaps(start, end) {
			return true
		}
	}
	return false
}

// resolveTargetRoom picks the room new imports land in: the connection's
// configured room, otherwise the lowest-id available room of the property so
// reconciliation stays reproducible.
func resolveTargetRoom(conn *models.CalendarConnection) (*models.Room, error) {
	var room models.Room
	if conn.RoomID != nil {
		if err := storage.DB.First(&room, *conn.RoomID).Error; err != nil {
			return nil, fmt.Errorf("configured room %d not found", *conn.RoomID)
		}
		return &room, nil
	}

	err := storage.DB.
		Where("property_id = ? AND status = ?", conn.PropertyID, models.RoomStatusAvailable).
		Order("id ASC").
		First(&room).Error
	if err != nil {
		return nil, fmt.Errorf("no available room for property %d", conn.PropertyID)
	}
	return &room, nil
}

func markSyncError(conn *models.CalendarConnection, msg string) {
	storage.DB.Model(conn).Updates(map[string]interface{}{
		"sync_status": models.SyncStatusError,
		"last_error":  msg,
	})
}
