package parse

// state names the grammar position the parser resumes from on the
// next pull. A stack of pending states records where to continue
// after a nested node closes.
type state int

const (
	sStreamStart state = iota
	sImplicitDocumentStart
	sDocumentStart
	sDocumentContent
	sDocumentEnd
	sBlockNode
	sBlockNodeOrIndentlessSequence
	sFlowNode
	sBlockSequenceFirstEntry
	sBlockSequenceEntry
	sIndentlessSequenceEntry
	sBlockMappingFirstKey
	sBlockMappingKey
	sBlockMappingValue
	sFlowSequenceFirstEntry
	sFlowSequenceEntry
	sFlowSequenceEntryMappingKey
	sFlowSequenceEntryMappingValue
	sFlowSequenceEntryMappingEnd
	sFlowMappingFirstKey
	sFlowMappingKey
	sFlowMappingValue
	sFlowMappingEmptyValue
	sEnd
)

var stateStrings = map[state]string{
	sStreamStart:                   "stream-start",
	sImplicitDocumentStart:         "implicit-document-start",
	sDocumentStart:                 "document-start",
	sDocumentContent:               "document-content",
	sDocumentEnd:                   "document-end",
	sBlockNode:                     "block-node",
	sBlockNodeOrIndentlessSequence: "block-node-or-indentless-sequence",
	sFlowNode:                      "flow-node",
	sBlockSequenceFirstEntry:       "block-sequence-first-entry",
	sBlockSequenceEntry:            "block-sequence-entry",
	sIndentlessSequenceEntry:       "indentless-sequence-entry",
	sBlockMappingFirstKey:          "block-mapping-first-key",
	sBlockMappingKey:               "block-mapping-key",
	sBlockMappingValue:             "block-mapping-value",
	sFlowSequenceFirstEntry:        "flow-sequence-first-entry",
	sFlowSequenceEntry:             "flow-sequence-entry",
	sFlowSequenceEntryMappingKey:   "flow-sequence-entry-mapping-key",
	sFlowSequenceEntryMappingValue: "flow-sequence-entry-mapping-value",
	sFlowSequenceEntryMappingEnd:   "flow-sequence-entry-mapping-end",
	sFlowMappingFirstKey:           "flow-mapping-first-key",
	sFlowMappingKey:                "flow-mapping-key",
	sFlowMappingValue:              "flow-mapping-value",
	sFlowMappingEmptyValue:         "flow-mapping-empty-value",
	sEnd:                           "end",
}

func (s state) String() string {
	return stateStrings[s]
}
