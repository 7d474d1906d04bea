package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/single"
	"github.com/blevesearch/bleve/v2/mapping"
)

// wholeFieldAnalyzer keeps each field as one lowercased term so that
// wildcard queries behave like substring matches over the full value.
const wholeFieldAnalyzer = "whole_field"

// searchableFields are the book fields matched by a query.
var searchableFields = []string{"title", "author", "description"}

func buildIndexMapping() (mapping.IndexMapping, error) {
	indexMapping := bleve.NewIndexMapping()

	err := indexMapping.AddCustomAnalyzer(wholeFieldAnalyzer, map[string]any{
		"type":          custom.Name,
		"tokenizer":     single.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, err
	}
	indexMapping.DefaultAnalyzer = wholeFieldAnalyzer

	docMapping := bleve.NewDocumentMapping()
	for _, field := range searchableFields {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = wholeFieldAnalyzer
		fm.Store = false
		fm.IncludeInAll = false
		docMapping.AddFieldMappingsAt(field, fm)
	}

	indexMapping.DefaultMapping = docMapping
	return indexMapping, nil
}
