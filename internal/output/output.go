// Package output renders engine results in JSON or XML form.
package output

import (
	"encoding/json"
	"encoding/xml"
	"fmt"

	"github.com/treescope/treescope/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	xmlHeader = xml.Header

	// errorMarshalFormat reports a serialization failure.
	errorMarshalFormat = "marshaling %s output: %w"
)

// xmlTreeDocument wraps tree snapshots in a single XML root element.
type xmlTreeDocument struct {
	XMLName xml.Name          `xml:"result"`
	Nodes   []*types.TreeNode `xml:"node"`
}

// xmlStatisticsDocument wraps statistics reports in a single XML root element.
type xmlStatisticsDocument struct {
	XMLName xml.Name                  `xml:"result"`
	Reports []*types.StatisticsReport `xml:"statistics"`
}

// RenderTreeJSON marshals tree snapshots as an indented JSON array.
func RenderTreeJSON(nodes []*types.TreeNode) (string, error) {
	encoded, encodeError := json.MarshalIndent(nodes, indentPrefix, indentSpacer)
	if encodeError != nil {
		return "", fmt.Errorf(errorMarshalFormat, types.FormatJSON, encodeError)
	}
	return string(encoded), nil
}

// RenderTreeXML marshals tree snapshots as an XML document.
func RenderTreeXML(nodes []*types.TreeNode) (string, error) {
	document := xmlTreeDocument{Nodes: nodes}
	encoded, encodeError := xml.MarshalIndent(document, indentPrefix, indentSpacer)
	if encodeError != nil {
		return "", fmt.Errorf(errorMarshalFormat, types.FormatXML, encodeError)
	}
	return xmlHeader + string(encoded), nil
}

// RenderStatisticsJSON marshals statistics reports as an indented JSON array.
func RenderStatisticsJSON(reports []*types.StatisticsReport) (string, error) {
	encoded, encodeError := json.MarshalIndent(reports, indentPrefix, indentSpacer)
	if encodeError != nil {
		return "", fmt.Errorf(errorMarshalFormat, types.FormatJSON, encodeError)
	}
	return string(encoded), nil
}

// RenderStatisticsXML marshals statistics reports as an XML document.
func RenderStatisticsXML(reports []*types.StatisticsReport) (string, error) {
	document := xmlStatisticsDocument{Reports: reports}
	encoded, encodeError := xml.MarshalIndent(document, indentPrefix, indentSpacer)
	if encodeError != nil {
		return "", fmt.Errorf(errorMarshalFormat, types.FormatXML, encodeError)
	}
	return xmlHeader + string(encoded), nil
}
