package handler

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"backend-hospital/internal/config"
	"backend-hospital/internal/models"
	"backend-hospital/internal/realtime"

	"github.com/gofiber/websocket/v2"
)

/*
|--------------------------------------------------------------------------
| Display Payload
|--------------------------------------------------------------------------
*/

type DisplayEntry struct {
	Position    int       `json:"position,omitempty"`
	PatientID   string    `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	CheckinTime time.Time `json:"checkin_time"`
	Status      string    `json:"status"`
}

var (
	// Debounce broadcasts — a burst of queue events costs one DB query
	broadcastTimer   *time.Timer
	broadcastTimerMu sync.Mutex
	broadcastDelay   = 50 * time.Millisecond
)

// QueueDisplaySocket serves one waiting-room display. The display only
// listens; the read loop exists to detect the close.
func QueueDisplaySocket(c *websocket.Conn) {
	realtime.Display.Register <- c
	defer func() {
		realtime.Display.Unregister <- c
	}()

	if msg, err := buildDisplayMessage(); err == nil {
		c.WriteMessage(websocket.TextMessage, msg)
	} else {
		log.Printf("[display] initial snapshot error: %v", err)
	}

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

// BroadcastQueueUpdate is called after every queue mutation.
func BroadcastQueueUpdate() {
	broadcastTimerMu.Lock()
	defer broadcastTimerMu.Unlock()

	if broadcastTimer != nil {
		broadcastTimer.Reset(broadcastDelay)
		return
	}

	broadcastTimer = time.AfterFunc(broadcastDelay, func() {
		broadcastTimerMu.Lock()
		broadcastTimer = nil
		broadcastTimerMu.Unlock()

		msg, err := buildDisplayMessage()
		if err != nil {
			log.Printf("[display] broadcast error: %v", err)
			return
		}
		realtime.Display.Broadcast <- msg
	})
}

func buildDisplayMessage() ([]byte, error) {
	ctx := context.Background()

	waiting, err := engine.Waiting(ctx)
	if err != nil {
		return nil, err
	}

	attending, err := listByStatus(models.StatusBeingAttended)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(waiting)+len(attending))
	for _, entry := range waiting {
		ids = append(ids, entry.PatientID)
	}
	for _, entry := range attending {
		ids = append(ids, entry.PatientID)
	}

	names, err := patientNames(ids)
	if err != nil {
		return nil, err
	}

	waitingView := make([]DisplayEntry, 0, len(waiting))
	for i, entry := range waiting {
		waitingView = append(waitingView, DisplayEntry{
			Position:    i + 1,
			PatientID:   entry.PatientID,
			PatientName: names[entry.PatientID],
			CheckinTime: entry.CheckinTime,
			Status:      entry.Status,
		})
	}

	attendingView := make([]DisplayEntry, 0, len(attending))
	for _, entry := range attending {
		attendingView = append(attendingView, DisplayEntry{
			PatientID:   entry.PatientID,
			PatientName: names[entry.PatientID],
			CheckinTime: entry.CheckinTime,
			Status:      entry.Status,
		})
	}

	payload := map[string]interface{}{
		"type":          "queue_update",
		"waiting":       waitingView,
		"in_attendance": attendingView,
		"timestamp":     time.Now().Format(time.RFC3339),
	}

	return json.Marshal(payload)
}

// patientNames resolves display names for a batch of patient ids in one
// query.
func patientNames(ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := config.DB.Query(
		"SELECT id, full_name FROM profiles WHERE id IN ("+placeholders+")", args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			continue
		}
		names[id] = name
	}
	return names, nil
}
