package api

const ContentEvent = "event"

type GetEventsInput struct {
	Arms []int
}

// GetEvents encodes an event export, optionally limited to some arms.
func GetEvents(in GetEventsInput) Payload {
	p := newPayload(ContentEvent)
	p.setIntList("arms", in.Arms)
	return *p
}

// ImportEvents encodes an event import.
func ImportEvents(in ImportInput) (Payload, error) {
	return importRecords("ImportEvents", ContentEvent, in)
}

type DeleteEventsInput struct {
	Events []string
}

// DeleteEvents encodes a deletion of events by unique event name.
func DeleteEvents(in DeleteEventsInput) (Payload, error) {
	if in.Events == nil {
		return Payload{}, missing("DeleteEvents", "events")
	}
	p := newActionPayload(ContentEvent, ActionDelete)
	p.setList("events", in.Events)
	return *p, nil
}
