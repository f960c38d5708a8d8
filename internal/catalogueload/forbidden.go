package catalogueload

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	foodex2errors "github.com/openfoodex/foodex2validator/errors"
	"github.com/openfoodex/foodex2validator/internal/catalogue"
	"github.com/openfoodex/foodex2validator/internal/model"
)

// LoadForbiddenProcessCSV parses the ';'-delimited forbidden-process
// reference table (spec.md §6: columns ROOT_GROUP_CODE, ROOT_GROUP_LABEL,
// FORBIDDEN_PROCS, FORBIDDEN_PROCS_LABELS, ORDINAL_CODE) and registers every
// row on store. The first row is treated as a header and skipped.
func LoadForbiddenProcessCSV(r io.Reader, store *catalogue.MemStore) error {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return foodex2errors.New(foodex2errors.ErrReferenceTableMissing, "forbidden-process table is empty")
	}
	if err != nil {
		return foodex2errors.Newf(foodex2errors.ErrReferenceTableMissing, "reading forbidden-process header", "%v", err)
	}
	_ = header

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return foodex2errors.Newf(foodex2errors.ErrReferenceTableMissing, "reading forbidden-process row", "%v", err)
		}
		if len(record) < 5 {
			continue
		}
		rootGroup := strings.TrimSpace(record[0])
		processes := strings.Split(record[2], ",")
		ordinal := parseOrdinal(record[4])
		for _, p := range processes {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			store.AddForbiddenProcess(model.ForbiddenProcess{
				RootGroupCode: rootGroup,
				ProcessCode:   p,
				OrdinalCode:   ordinal,
			})
		}
	}
	return nil
}

// parseOrdinal parses a rational ordinal string like "1", "1.0", or "1.2"
// into a model.Ordinal. An unparseable or empty value is the non-exclusive
// zero ordinal.
func parseOrdinal(raw string) model.Ordinal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.ZeroOrdinal
	}
	dot := strings.IndexByte(raw, '.')
	if dot < 0 {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return model.ZeroOrdinal
		}
		return model.Ordinal{IntegerPart: n}
	}
	intPart, err := strconv.Atoi(raw[:dot])
	if err != nil {
		return model.ZeroOrdinal
	}
	fracStr := raw[dot+1:]
	if fracStr == "0" || fracStr == "" {
		return model.Ordinal{IntegerPart: intPart}
	}
	fracPart, err := strconv.Atoi(fracStr)
	if err != nil {
		return model.Ordinal{IntegerPart: intPart}
	}
	return model.Ordinal{IntegerPart: intPart, FractionPart: fracPart, HasFraction: true}
}
