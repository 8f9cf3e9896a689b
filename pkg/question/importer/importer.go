// Package importer reads question batches from JSON documents and XLSX workbooks.
package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"placement/pkg/question/service"
)

var ErrUnsupportedFormat = errors.New("unsupported file format (want .json or .xlsx)")

// LoadFile picks a reader by extension. sheet is only used for workbooks;
// empty means the first sheet.
func LoadFile(path, sheet string) ([]service.CandidateQuestion, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return LoadJSON(f)
	case ".xlsx":
		return LoadXLSX(path, sheet)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// LoadJSON accepts either {"questions": [...]} or a bare array.
func LoadJSON(r io.Reader) ([]service.CandidateQuestion, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)

	var items []service.CandidateQuestion
	if bytes.HasPrefix(data, []byte("[")) {
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode question array: %w", err)
		}
		return items, nil
	}
	var doc struct {
		Questions []service.CandidateQuestion `json:"questions"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode questions document: %w", err)
	}
	return doc.Questions, nil
}

// LoadXLSX reads one question per row below a header row. Options are split
// on "|", companies and images on ",". A blank hasOptions cell is inferred
// from whether any options were given.
func LoadXLSX(path, sheet string) ([]service.CandidateQuestion, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: workbook has no sheets", path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: sheet %q is empty", path, sheet)
	}

	norm := func(s string) string {
		s = strings.TrimSpace(s)
		s = strings.TrimPrefix(s, "\uFEFF") // BOM
		s = strings.ToLower(s)
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, "-", "")
		s = strings.ReplaceAll(s, "_", "")
		return s
	}
	hmap := map[string]int{}
	for i, h := range rows[0] {
		hmap[norm(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cQuestion := findAny("question", "text", "question_text")
	cOptions := findAny("options", "choices")
	cAnswer := findAny("correctAnswer", "answer", "correct_answer")
	cHasOpts := findAny("hasOptions", "has_options", "mcq")
	cCategory := findAny("category")
	cSubcat := findAny("subcategory", "sub_category", "topic")
	cExplain := findAny("explanation", "solution")
	cCompany := findAny("company", "companies")
	cImage := findAny("question_image", "image", "images")

	if cQuestion == -1 || cAnswer == -1 || cCategory == -1 || cCompany == -1 {
		return nil, fmt.Errorf("sheet %q missing required columns. Found headers: %v\nNeed at least: question, correctAnswer, category, company", sheet, rows[0])
	}

	var out []service.CandidateQuestion
	for _, rec := range rows[1:] {
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		if strings.Join(rec, "") == "" {
			continue
		}

		options := split(get(cOptions), "|")
		hasOptions := len(options) > 0
		if v := get(cHasOpts); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				hasOptions = b
			}
		}
		out = append(out, service.CandidateQuestion{
			Question:      get(cQuestion),
			Options:       options,
			CorrectAnswer: get(cAnswer),
			HasOptions:    &hasOptions,
			Category:      get(cCategory),
			Subcategory:   get(cSubcat),
			Explanation:   get(cExplain),
			Company:       split(get(cCompany), ","),
			Images:        split(get(cImage), ","),
		})
	}
	return out, nil
}

func split(s, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
