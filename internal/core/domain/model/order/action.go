package order

// Action is a workflow step that may move an order to another status.
type Action int

const (
	// ActionUnknown catches uninitialized Action values.
	ActionUnknown Action = iota

	// Cancel cancels an order that has not left the warehouse.
	Cancel

	// Dispatch hands the order over to a truck.
	Dispatch

	// Deliver confirms physical delivery to the customer.
	Deliver

	// ReturnCancel cancels a dispatched order and records the return.
	ReturnCancel

	// AttachSignedInvoice records a signed invoice as proof of delivery.
	// It is not part of the transition table and never changes the status.
	AttachSignedInvoice
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionUnknown:       "unknown",
		Cancel:              "cancel",
		Dispatch:            "dispatch",
		Deliver:             "deliver",
		ReturnCancel:        "return-cancel",
		AttachSignedInvoice: "signed-invoice",
	}
}

// Actions lists every action of the transition table.
func Actions() []Action {
	return []Action{Cancel, Dispatch, Deliver, ReturnCancel}
}

func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "unknown"
}
