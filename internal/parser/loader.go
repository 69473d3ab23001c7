package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
)

// LoadError 입력 파일을 테이블로 해석할 수 없는 치명적 오류
// The only fatal error class in the pipeline: no partial dataset is produced.
type LoadError struct {
	Filename string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Filename, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load 업로드 파일을 데이터셋으로 로드
// Dispatches on the file extension: .csv is parsed as CSV, everything else
// goes through excelize. The first row is the header row.
func Load(r io.Reader, filename string) (*model.Dataset, error) {
	var (
		ds  *model.Dataset
		err error
	)
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		ds, err = LoadCSV(r)
	} else {
		ds, err = LoadXLSX(r)
	}
	if err != nil {
		return nil, &LoadError{Filename: filepath.Base(filename), Err: err}
	}
	return ds, nil
}

// LoadXLSX 엑셀 파일 로드 (첫 번째 시트)
func LoadXLSX(r io.Reader) (*model.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, errors.New("empty sheet")
	}

	return model.NewDataset(rows[0], rows[1:]), nil
}

// LoadCSV CSV 파일 로드
func LoadCSV(r io.Reader) (*model.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // 행마다 셀 수가 다를 수 있음

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("empty csv")
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	return model.NewDataset(header, records[1:]), nil
}
