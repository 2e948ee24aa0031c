package notifier

import (
	"context"
	"fmt"
)

type Kind string

const (
	KindBedTypeExhausted Kind = "bed_type_exhausted"
	KindHighLoad         Kind = "high_load"
	KindOutOfStock       Kind = "medicine_out_of_stock"
)

// Alert is one capacity notification addressed to a hospital.
type Alert struct {
	Kind       Kind
	HospitalID string
	To         string
	Subject    string
	Body       string
	// Ref names what the alert is about (bed type, medicine id) and scopes dedupe.
	Ref string
}

func (a Alert) DedupeKey() string {
	return fmt.Sprintf("alert_sent:%s:%s:%s", a.HospitalID, a.Kind, a.Ref)
}

// Alerter accepts alerts for asynchronous delivery. Raise never blocks the caller.
type Alerter interface {
	Raise(ctx context.Context, alert Alert)
}

// NopAlerter drops every alert. Used when SMTP is not configured.
type NopAlerter struct{}

func (NopAlerter) Raise(context.Context, Alert) {}
