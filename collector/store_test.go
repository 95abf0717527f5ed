package collector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLine(t *testing.T) {
	cases := []struct {
		o    Outcome
		want string
	}{
		{Outcome{Site: "山东大学电气工程学院", Name: "张三", Honors: []string{"杰青", "长江"}}, "山东大学电气工程学院 - 张三：杰青、长江"},
		{Outcome{Site: "山东大学电气工程学院", Name: "李四"}, "山东大学电气工程学院 - 李四：无"},
		{Outcome{Site: "山东大学电气工程学院", Name: "王五", Failed: true}, "山东大学电气工程学院 - 王五：获取信息失败"},
		{Outcome{Site: "s", Name: "n", Honors: []string{}}, "s - n：无"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatLine(&tc.o))
	}
}

func TestStatus(t *testing.T) {
	assert.Equal(t, StatusOK, (&Outcome{}).Status())
	assert.Equal(t, StatusFailed, (&Outcome{Failed: true}).Status())
}

type memStore struct {
	saved    []*Outcome
	saveErr  error
	closeErr error
	closed   bool
}

func (m *memStore) Save(outcomes ...*Outcome) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, outcomes...)
	return nil
}

func (m *memStore) Close() error {
	m.closed = true
	return m.closeErr
}

func TestMulti(t *testing.T) {
	a, b := &memStore{}, &memStore{}
	s := Multi(a, b)

	o := &Outcome{Name: "张三"}
	assert.NoError(t, s.Save(o))
	assert.Equal(t, []*Outcome{o}, a.saved)
	assert.Equal(t, []*Outcome{o}, b.saved)

	assert.NoError(t, s.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func TestMultiErrors(t *testing.T) {
	errDisk := errors.New("disk full")
	a, b := &memStore{saveErr: errDisk, closeErr: errDisk}, &memStore{}
	s := Multi(a, b)

	assert.ErrorIs(t, s.Save(&Outcome{}), errDisk)
	assert.Empty(t, b.saved)

	assert.ErrorIs(t, s.Close(), errDisk)
	assert.True(t, b.closed)
}

func TestMultiSingle(t *testing.T) {
	a := &memStore{}
	assert.Same(t, a, Multi(a))
}
