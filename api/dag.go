package api

const ContentDAG = "dag"

// GetDAGs encodes a data access group export.
func GetDAGs() Payload {
	return *newPayload(ContentDAG)
}

// ImportDAGs encodes a data access group import.
func ImportDAGs(in ImportInput) (Payload, error) {
	return importRecords("ImportDAGs", ContentDAG, in)
}

type DeleteDAGsInput struct {
	DAGs []string
}

// DeleteDAGs encodes a deletion of the named groups. DAGs is required.
func DeleteDAGs(in DeleteDAGsInput) (Payload, error) {
	if in.DAGs == nil {
		return Payload{}, missing("DeleteDAGs", "dags")
	}
	p := newActionPayload(ContentDAG, ActionDelete)
	p.setList("dags", in.DAGs)
	return *p, nil
}
