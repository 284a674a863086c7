package api

const ContentArm = "arm"

// GetArmsInput filters an arm export. An empty Arms list exports every arm.
type GetArmsInput struct {
	Arms []int
}

// GetArms encodes an arm export.
func GetArms(in GetArmsInput) Payload {
	p := newPayload(ContentArm)
	p.setIntList("arms", in.Arms)
	return *p
}

// ImportArmsInput is the input of ImportArms. Override replaces every existing
// arm instead of merging.
type ImportArmsInput struct {
	Data     Records
	Format   Format
	Override bool
}

// ImportArms encodes an arm import.
func ImportArms(in ImportArmsInput) (Payload, error) {
	p := newActionPayload(ContentArm, ActionImport)
	if in.Override {
		p.set("override", "1")
	}
	if err := p.setRecords("ImportArms", in.Format, in.Data); err != nil {
		return Payload{}, err
	}
	return *p, nil
}

type DeleteArmsInput struct {
	Arms []int
}

// DeleteArms encodes an arm deletion. Arms is required.
func DeleteArms(in DeleteArmsInput) (Payload, error) {
	if in.Arms == nil {
		return Payload{}, missing("DeleteArms", "arms")
	}
	p := newActionPayload(ContentArm, ActionDelete)
	p.setIntList("arms", in.Arms)
	return *p, nil
}
