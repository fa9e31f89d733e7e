package utils

import (
	"context"
	"encoding/json"
	"time"
)

// ChangeEvent notifies the partner's client that shared state moved.
// Delivery is best-effort; clients also refetch on focus.
type ChangeEvent struct {
	UserID string `json:"user_id"`
	Kind   string `json:"kind"`
	Date   string `json:"date,omitempty"`
	At     int64  `json:"at"`
}

const pushTopic = "sawa:events"

// PublishChange fans a change notification out over Redis pub/sub.
// Failures are logged and swallowed: the push channel never blocks or
// fails a mutation.
func PublishChange(userID, kind, date string) {
	rc := GetRedis()
	if rc == nil {
		return
	}
	ev := ChangeEvent{UserID: userID, Kind: kind, Date: date, At: time.Now().Unix()}
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rc.Publish(ctx, pushTopic, b).Err(); err != nil {
		if Sugar != nil {
			Sugar.Warnf("push publish failed: %v", err)
		}
	}
}

// SubscribeChanges returns a channel of change events. The subscription
// ends when ctx is done.
func SubscribeChanges(ctx context.Context) (<-chan ChangeEvent, error) {
	rc := GetRedis()
	if rc == nil {
		ch := make(chan ChangeEvent)
		close(ch)
		return ch, nil
	}
	sub := rc.Subscribe(ctx, pushTopic)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan ChangeEvent, 16)
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var ev ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					continue
				}
				select {
				case out <- ev:
				default:
					// Slow consumer; drop rather than block the pump.
				}
			}
		}
	}()
	return out, nil
}
