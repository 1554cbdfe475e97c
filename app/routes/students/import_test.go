package students

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoster(t *testing.T) {
	csv := "student_number,name\n10101,Kim Minjun\n10102,Lee Seoyeon\n10103,Park Jiho\n"

	students, err := ParseRoster(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, students, 3)

	assert.Equal(t, "10101", students[0].StudentNumber)
	assert.Equal(t, "Kim Minjun", students[0].Name)
	assert.Equal(t, "10103", students[2].StudentNumber)
}

func TestParseRosterLocalizedHeaders(t *testing.T) {
	csv := "학번,이름\n20201,홍길동\n20202,김철수\n"

	students, err := ParseRoster(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "홍길동", students[0].Name)
}

func TestParseRosterExtraColumns(t *testing.T) {
	csv := "grade,name,student_number\n1,Choi Yuna,30301\n"

	students, err := ParseRoster(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "30301", students[0].StudentNumber)
	assert.Equal(t, "Choi Yuna", students[0].Name)
}

func TestParseRosterNumbersStayStrings(t *testing.T) {
	csv := "student_number,name\n007,Bond\n"

	students, err := ParseRoster(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, "007", students[0].StudentNumber)
}

func TestParseRosterMissingColumns(t *testing.T) {
	cases := []string{
		"number,name\n1,a\n",
		"student_number,full_name\n1,a\n",
		"",
	}
	for _, csv := range cases {
		_, err := ParseRoster(strings.NewReader(csv))
		assert.ErrorIs(t, err, ErrMissingColumns, csv)
	}
}

func TestParseRosterRejectsEmptyValues(t *testing.T) {
	csv := "student_number,name\n10101,Kim Minjun\n,Missing Number\n"

	_, err := ParseRoster(strings.NewReader(csv))
	assert.Error(t, err)
}

func TestParseRosterSkipsBlankRows(t *testing.T) {
	csv := "student_number,name\n10101,Kim Minjun\n,\n10102,Lee Seoyeon\n"

	students, err := ParseRoster(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, students, 2)
}
