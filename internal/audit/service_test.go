package audit

import (
	"context"
	"strings"
	"testing"

	"shinepos-backend/internal/models"
)

func TestActorRoundTrip(t *testing.T) {
	ctx := WithActor(context.Background(), Actor{UserID: 7, Name: "Ayşe"})
	got := ActorFrom(ctx)
	if got.UserID != 7 || got.Name != "Ayşe" {
		t.Fatalf("ActorFrom = %+v", got)
	}
	if zero := ActorFrom(context.Background()); zero != (Actor{}) {
		t.Fatalf("ActorFrom(empty) = %+v, want zero actor", zero)
	}
}

func TestSnapshot(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "null"},
		{"map", map[string]int{"a": 1}, `{"a":1}`},
		{"unmarshalable", make(chan int), "null"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := snapshot(tc.in); got != tc.want {
				t.Fatalf("snapshot = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestSnapshotUsesAPIFieldNames(t *testing.T) {
	got := snapshot(models.CommissionLog{ID: 4, SalesPersonID: 1, RestaurantID: 10, Status: models.CommissionPending})
	for _, want := range []string{`"salesPersonId":1`, `"restaurantId":10`, `"status":"pending"`, `"paidAt":null`} {
		if !strings.Contains(got, want) {
			t.Fatalf("snapshot %s missing %s", got, want)
		}
	}
	if strings.Contains(got, "SalesPersonID") {
		t.Fatalf("snapshot %s uses Go field names", got)
	}
}
