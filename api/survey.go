package api

const (
	ContentSurveyLink       = "surveyLink"
	ContentParticipantList  = "participantList"
	ContentSurveyQueueLink  = "surveyQueueLink"
	ContentSurveyReturnCode = "surveyReturnCode"
)

// SurveyInput addresses one survey response. Event defaults to "" and
// RepeatInstance to 1.
type SurveyInput struct {
	Record         string
	Instrument     string
	Event          string
	RepeatInstance int
}

// GetSurveyLink encodes a request for a participant's unique survey link.
func GetSurveyLink(in SurveyInput) (Payload, error) {
	return surveyPayload("GetSurveyLink", ContentSurveyLink, in)
}

// GetSurveyReturnCode encodes a request for a participant's return code.
func GetSurveyReturnCode(in SurveyInput) (Payload, error) {
	return surveyPayload("GetSurveyReturnCode", ContentSurveyReturnCode, in)
}

func surveyPayload(encoder, content string, in SurveyInput) (Payload, error) {
	if in.Record == "" {
		return Payload{}, missing(encoder, "record")
	}
	if in.Instrument == "" {
		return Payload{}, missing(encoder, "instrument")
	}
	p := newPayload(content)
	p.set("record", in.Record)
	p.set("instrument", in.Instrument)
	p.set("event", in.Event)
	p.set("repeat_instance", repeatInstance(in.RepeatInstance))
	return *p, nil
}

type ParticipantListInput struct {
	Instrument string
	Event      string
	Format     Format
}

// GetParticipantList encodes an export of a survey's participant list.
func GetParticipantList(in ParticipantListInput) (Payload, error) {
	if in.Instrument == "" {
		return Payload{}, missing("GetParticipantList", "instrument")
	}
	p := newPayload(ContentParticipantList)
	if f := in.Format.or(FormatJSON); f != FormatJSON {
		p.set(KeyFormat, string(f))
	}
	p.set("instrument", in.Instrument)
	p.set("event", in.Event)
	return *p, nil
}

// GetSurveyQueueLink encodes a request for a record's survey queue link.
func GetSurveyQueueLink(record string) (Payload, error) {
	if record == "" {
		return Payload{}, missing("GetSurveyQueueLink", "record")
	}
	p := newPayload(ContentSurveyQueueLink)
	p.set("record", record)
	return *p, nil
}
