package api

const ContentRepeatingFormsEvents = "repeatingFormsEvents"

func GetRepeatingFormsEvents() Payload {
	return *newPayload(ContentRepeatingFormsEvents)
}

// ImportRepeatingFormsEvents replaces the project's repeating instrument and
// event setup.
func ImportRepeatingFormsEvents(in ImportInput) (Payload, error) {
	return importRecords("ImportRepeatingFormsEvents", ContentRepeatingFormsEvents, in)
}
