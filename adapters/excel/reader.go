package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/marshallyale/go-outdoors-learning/domain/survey"
	"github.com/marshallyale/go-outdoors-learning/internal/errors"
)

const (
	FileTypeCSV  = "csv"
	FileTypeXLSX = "xlsx"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	return &DataReader{filePath: filePath, fileType: DetectFileType(filePath)}
}

// DetectFileType maps a file extension to a reader file type; unknown extensions yield ""
func DetectFileType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		return FileTypeCSV
	case ".xlsx", ".xlsm":
		return FileTypeXLSX
	default:
		return ""
	}
}

// FileType reports the detected file type
func (r *DataReader) FileType() string {
	return r.fileType
}

// ReadWorkbook reads every table of the file, in file order
func (r *DataReader) ReadWorkbook() (*Workbook, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("input file %s", r.filePath))
	}

	var (
		sheets []survey.Sheet
		err    error
	)
	switch r.fileType {
	case FileTypeCSV:
		sheets, err = r.readCSVData()
	case FileTypeXLSX:
		sheets, err = r.readExcelData()
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported file type: %s", filepath.Ext(r.filePath)))
	}
	if err != nil {
		return nil, err
	}

	return &Workbook{Path: r.filePath, FileType: r.fileType, Sheets: sheets}, nil
}

// readExcelData reads every sheet of the workbook
func (r *DataReader) readExcelData() ([]survey.Sheet, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "failed to open Excel file"))
	}
	defer f.Close()
	log.Printf("[DataReader] Excel file opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	var sheets []survey.Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, errors.WithCode(errors.CodeInvalidInput, errors.Wrapf(err, "failed to read sheet %s", name))
		}
		log.Printf("[DataReader] Sheet %s read (%d rows)", name, len(rows))
		sheets = append(sheets, survey.Sheet{Name: name, Rows: trimRows(rows)})
	}

	return sheets, nil
}

// readCSVData reads the CSV file as a single sheet named after the file
func (r *DataReader) readCSVData() ([]survey.Sheet, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "failed to read CSV file"))
	}
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}

	name := strings.TrimSuffix(filepath.Base(r.filePath), filepath.Ext(r.filePath))
	return []survey.Sheet{{Name: name, Rows: trimRows(rows)}}, nil
}

func trimRows(rows [][]string) [][]string {
	for _, row := range rows {
		for j, cell := range row {
			row[j] = strings.TrimSpace(cell)
		}
	}
	return rows
}
