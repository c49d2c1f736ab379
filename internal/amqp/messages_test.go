package amqp

import "testing"

func TestRecordEventRoundTrip(t *testing.T) {
	ev := NewRecordEvent("vendas", ActionCreated, 7, 3, 5000)

	data, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := RecordEventFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Category != "vendas" || got.Action != ActionCreated ||
		got.RecordID != 7 || got.OwnerID != 3 || got.CommissionCents != 5000 {
		t.Fatalf("unexpected event: %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Fatal("timestamp must survive the round trip")
	}
}

func TestRecordEventFromJSONRejectsGarbage(t *testing.T) {
	if _, err := RecordEventFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
