package normalizer

import (
	"context"
	"errors"
	"testing"
	"time"

	"gagyebu/ledger-csv/internal/categorizer"
	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/models"
	"gagyebu/ledger-csv/internal/parsererror"
	"gagyebu/ledger-csv/internal/taxonomy"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cells = []models.Cell

var canonicalHeader = cells{"날짜", "결제수단", "지출 내용", "결제금액", "대분류", "소분류", "할인", "실지출", "비고"}

func newTestNormalizer(t *testing.T) (*Normalizer, *logging.MockLogger) {
	t.Helper()
	logger := logging.NewMockLogger()
	return NewNormalizer(taxonomy.Default(), nil, DefaultOptions(), logger), logger
}

func table(rows ...cells) models.RawTable {
	out := make([][]models.Cell, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return models.RawTable{Source: "test", Rows: out}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func assertNetInvariant(t *testing.T, ledger models.Ledger) {
	t.Helper()
	for i, r := range ledger {
		assert.True(t, r.Net().Equal(r.Gross.Sub(r.Discount)), "record %d", i)
		assert.False(t, r.Discount.IsNegative(), "record %d discount is negative", i)
	}
}

func assertPairingInvariant(t *testing.T, tree taxonomy.Tree, ledger models.Ledger) {
	t.Helper()
	for i, r := range ledger {
		if r.Major == "" {
			assert.Empty(t, r.Minor, "record %d has a minor without a major", i)
		}
		if r.Major != "" && tree.HasMajor(r.Major) {
			assert.True(t, tree.HasMinor(r.Major, r.Minor), "record %d has invalid pair (%s, %s)", i, r.Major, r.Minor)
		}
	}
}

func TestNormalize_HeaderThreshold(t *testing.T) {
	n, _ := newTestNormalizer(t)

	t.Run("one recognized header falls back to positions", func(t *testing.T) {
		raw := table(
			cells{"금액", "foo", "bar", "baz", "qux"},
			cells{"2024-01-05", "카드", "스타벅스", "4,500원", ""},
		)
		res := n.ResolveHeader(raw)
		assert.True(t, res.Positional())
		assert.Equal(t, 0, res.DataStart)

		ledger, _, err := n.Normalize(context.Background(), raw)
		require.NoError(t, err)
		require.Len(t, ledger, 1)
		assert.Equal(t, day(2024, time.January, 5), ledger[0].Date)
		assert.Equal(t, "카드", ledger[0].PaymentMethod)
		assert.Equal(t, "스타벅스", ledger[0].Description)
		assert.True(t, dec(4500).Equal(ledger[0].Gross))
	})

	t.Run("two recognized headers mark the header row", func(t *testing.T) {
		raw := table(
			cells{"날짜", "금액", "foo"},
			cells{"2024-01-05", "4500", "x"},
		)
		res := n.ResolveHeader(raw)
		require.False(t, res.Positional())
		assert.Equal(t, 0, res.HeaderRow)
		assert.Equal(t, map[models.Field]int{models.FieldDate: 0, models.FieldGross: 1}, res.Columns)

		ledger, _, err := n.Normalize(context.Background(), raw)
		require.NoError(t, err)
		require.Len(t, ledger, 1)
		assert.Equal(t, "", ledger[0].Description)
		assert.Equal(t, "", ledger[0].Note)
	})

	t.Run("header below a title row", func(t *testing.T) {
		raw := table(
			cells{"2024년 3월 가계부"},
			cells{},
			cells{"일자", "사용처", "이용금액"},
			cells{"2024.03.02", "이마트", "52,000"},
		)
		res := n.ResolveHeader(raw)
		assert.Equal(t, 2, res.HeaderRow)
		assert.Equal(t, 3, res.DataStart)

		ledger, _, err := n.Normalize(context.Background(), raw)
		require.NoError(t, err)
		require.Len(t, ledger, 1)
		assert.Equal(t, "이마트", ledger[0].Description)
		assert.Equal(t, models.Pair{Major: "식비", Minor: "식료품"}, ledger[0].Category())
	})

	t.Run("header beyond scan window is ignored", func(t *testing.T) {
		rows := make([]cells, 0, 12)
		for i := 0; i < 10; i++ {
			rows = append(rows, cells{"메모"})
		}
		rows = append(rows, cells{"날짜", "금액"})
		res := n.ResolveHeader(table(rows...))
		assert.True(t, res.Positional())
	})
}

func TestNormalize_HeaderMapping(t *testing.T) {
	n, logger := newTestNormalizer(t)

	t.Run("blank columns dropped before positional mapping", func(t *testing.T) {
		raw := table(
			cells{"2024-01-05", nil, "교통카드", " ", "버스", 1450.0},
			cells{"2024-01-06", "", "교통카드", nil, "택시", 8000.0},
		)
		ledger, _, err := n.Normalize(context.Background(), raw)
		require.NoError(t, err)
		require.Len(t, ledger, 2)
		assert.Equal(t, "교통카드", ledger[0].PaymentMethod)
		assert.Equal(t, "버스", ledger[0].Description)
		assert.True(t, dec(1450).Equal(ledger[0].Gross))
		assert.Equal(t, models.Pair{Major: "교통", Minor: "택시"}, ledger[1].Category())
	})

	t.Run("duplicate canonical header keeps leftmost", func(t *testing.T) {
		raw := table(
			cells{"날짜", "금액", "결제금액"},
			cells{"2024-01-05", "1000", "2000"},
		)
		res := n.ResolveHeader(raw)
		assert.Equal(t, 1, res.Columns[models.FieldGross])

		ledger, _, err := n.Normalize(context.Background(), raw)
		require.NoError(t, err)
		require.Len(t, ledger, 1)
		assert.True(t, dec(1000).Equal(ledger[0].Gross))
	})

	t.Run("blank header cell drops its column", func(t *testing.T) {
		raw := table(
			cells{"날짜", "", "금액"},
			cells{"2024-01-05", "junk", "1000"},
		)
		res := n.ResolveHeader(raw)
		assert.Len(t, res.Columns, 2)
	})

	t.Run("decomposed hangul headers match", func(t *testing.T) {
		// 날짜 and 금액 in NFD form
		raw := table(
			cells{"\u1102\u1161\u11af\u110d\u1161", "\u1100\u1173\u11b7\u110b\u1162\u11a8"},
			cells{"2024-01-05", "1000"},
		)
		res := n.ResolveHeader(raw)
		assert.False(t, res.Positional())
	})

	t.Run("unrecognized header gets a hint", func(t *testing.T) {
		logger.Clear()
		raw := table(
			cells{"날짜", "금액", "지출 내 용"},
			cells{"2024-01-05", "1000", "x"},
		)
		n.ResolveHeader(raw)

		entries := logger.EntriesByLevel("DEBUG")
		var hint interface{}
		for _, e := range entries {
			if e.Message != "Dropping unrecognized header" {
				continue
			}
			for _, f := range e.Fields {
				if f.Key == "did_you_mean" {
					hint = f.Value
				}
			}
		}
		assert.Equal(t, "지출 내용", hint)
	})
}

func TestNormalize_RowFilter(t *testing.T) {
	n, _ := newTestNormalizer(t)

	raw := table(
		canonicalHeader,
		cells{"2024-01-01", "카드", "점심", "12,000원", "", "", "", "", ""},
		cells{"", "", "합계", "합계", "", "", "", "", ""},
		cells{nil, nil, nil, nil, nil, nil, nil, nil, nil},
		cells{"", "", "", "", "", "", "", "", ""},
		cells{"2024-01-02", "현금", "저녁", "", "", "", "", "", ""},
		cells{"2024-01-03", "현금", "간식", 3000, "", "", "", "", ""},
	)

	ledger, _, err := n.Normalize(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, ledger, 2)
	assert.Equal(t, "점심", ledger[0].Description)
	assert.True(t, dec(12000).Equal(ledger[0].Gross))
	assert.Equal(t, "간식", ledger[1].Description)
	assert.True(t, dec(3000).Equal(ledger[1].Gross))
}

func TestNormalize_Amounts(t *testing.T) {
	n, _ := newTestNormalizer(t)

	raw := table(
		canonicalHeader,
		cells{"2024-03-01", "카드", "환불", -5000.0, "", "", nil, nil, ""},
		cells{"2024-03-02", "카드", "할인 구매", "10,000원", "", "", "1,500원", "999", ""},
		cells{"2024-03-03", "카드", "음수 할인", "10000", "", "", "-2000", "", ""},
		cells{"2024-03-04", "카드", "이상한 할인", "10000", "", "", "많이", "", ""},
		cells{"2024-03-05", "카드", "환불 할인", "-7,000원", "", "", "1000", "", ""},
	)

	ledger, _, err := n.Normalize(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, ledger, 5)
	assertNetInvariant(t, ledger)

	tests := []struct {
		gross, discount, net int64
	}{
		{5000, 5000, 0},
		{10000, 1500, 8500},
		{10000, 2000, 8000},
		{10000, 0, 10000},
		{7000, 7000, 0},
	}
	for i, tt := range tests {
		assert.True(t, dec(tt.gross).Equal(ledger[i].Gross), "gross %d: %s", i, ledger[i].Gross)
		assert.True(t, dec(tt.discount).Equal(ledger[i].Discount), "discount %d: %s", i, ledger[i].Discount)
		assert.True(t, dec(tt.net).Equal(ledger[i].Net()), "net %d: %s", i, ledger[i].Net())
	}
}

func TestNormalize_Dates(t *testing.T) {
	n, _ := newTestNormalizer(t)
	typed := time.Date(2024, time.June, 1, 13, 30, 0, 0, time.UTC)

	raw := table(
		canonicalHeader,
		cells{"2026.01.01 (목)", "", "a", "1000", "", "", "", "", ""},
		cells{45000.0, "", "b", "1000", "", "", "", "", ""},
		cells{"45000", "", "c", "1000", "", "", "", "", ""},
		cells{"garbage", "", "d", "1000", "", "", "", "", ""},
		cells{typed, "", "e", "1000", "", "", "", "", ""},
		cells{"", "", "f", "1000", "", "", "", "", ""},
	)

	ledger, _, err := n.Normalize(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, ledger, 6, "date is not a filter criterion")

	assert.Equal(t, day(2026, time.January, 1), ledger[0].Date)
	assert.Equal(t, day(2023, time.March, 15), ledger[1].Date)
	assert.Equal(t, day(2023, time.March, 15), ledger[2].Date)
	assert.False(t, ledger[3].HasDate())
	assert.Equal(t, day(2024, time.June, 1), ledger[4].Date)
	assert.False(t, ledger[5].HasDate())
}

func TestNormalize_Classification(t *testing.T) {
	tables := taxonomy.Tables{
		Tree: taxonomy.MustTree([]taxonomy.Branch{
			{Major: "식비", Minors: []string{"식료품", "카페"}},
			{Major: "교통", Minors: []string{"주유", "택시"}},
		}),
		Aliases: taxonomy.DefaultAliases(),
		Rules: taxonomy.ClassifierTable{
			{Keyword: "커피", Major: "식비", Minor: "카페"},
			{Keyword: "주유", Major: "교통", Minor: "주유"},
			{Keyword: "택시", Major: "교통", Minor: "택시"},
		},
	}
	n := NewNormalizer(tables, nil, DefaultOptions(), logging.NewMockLogger())

	raw := table(
		canonicalHeader,
		cells{"", "", "주유소 옆 커피", "1000", "", "", "", "", ""},
		cells{"", "", "커피", "1000", "교통", "택시", "", "", ""},
		cells{"", "", "택시 커피", "1000", "  ", "", "", "", ""},
		cells{"", "", "커피", "1000", "", "택시", "", "", ""},
		cells{"", "", "주유", "1000", "교통", "", "", "", ""},
		cells{"", "", "커피", "1000", "교통", "", "", "", ""},
		cells{"", "", "모름", "1000", "", "", "", "", ""},
		cells{"", "", 12345, "1000", "", "", "", "", ""},
		cells{"2026.01.01 (목)", "", "알수없는가게", "12,000원", "", "외식", "", "", ""},
	)

	ledger, notices, err := n.Normalize(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, ledger, 9)

	assert.Equal(t, models.Pair{Major: "식비", Minor: "카페"}, ledger[0].Category(), "declaration order wins")
	assert.Equal(t, models.Pair{Major: "교통", Minor: "택시"}, ledger[1].Category(), "existing pair kept")
	assert.Equal(t, models.Pair{Major: "식비", Minor: "카페"}, ledger[2].Category(), "whitespace major is blank")
	// classified major with a kept minor that does not belong is corrected
	assert.Equal(t, models.Pair{Major: "식비", Minor: "식료품"}, ledger[3].Category())
	assert.Equal(t, models.Pair{Major: "교통", Minor: "주유"}, ledger[4].Category(), "minor filled when majors agree")
	assert.Equal(t, models.Pair{Major: "교통", Minor: "주유"}, ledger[5].Category(), "disagreeing classifier falls back to first minor")
	assert.True(t, ledger[6].Category().IsZero())
	assert.True(t, ledger[7].Category().IsZero(), "non-text description is not classified")
	assert.Equal(t, "12345", ledger[7].Description)
	assert.True(t, ledger[8].Category().IsZero(), "unmatched row keeps no minor without a major")

	assertPairingInvariant(t, tables.Tree, ledger)

	require.Len(t, notices, 3)
	assert.Equal(t, models.Notice{Index: 3, Kind: models.NoticeMinorCorrected, Major: "식비", Minor: "식료품", Previous: "택시"}, notices[0])
	assert.Equal(t, models.Notice{Index: 5, Kind: models.NoticeMinorCorrected, Major: "교통", Minor: "주유", Previous: ""}, notices[1])
	assert.Equal(t, models.Notice{Index: 8, Kind: models.NoticeOrphanMinor, Previous: "외식"}, notices[2])
}

func TestNormalize_UnknownMajorKept(t *testing.T) {
	n, _ := newTestNormalizer(t)
	raw := table(
		canonicalHeader,
		cells{"", "", "항공권", "300000", "해외", "항공", "", "", ""},
	)

	ledger, notices, err := n.Normalize(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, models.Pair{Major: "해외", Minor: "항공"}, ledger[0].Category())
	require.Len(t, notices, 1)
	assert.Equal(t, models.NoticeUnknownMajor, notices[0].Kind)
}

func TestNormalize_DefaultBucket(t *testing.T) {
	tables := taxonomy.Default()
	bucket, err := categorizer.NewBucketPolicy(categorizer.BucketOther, "", "")
	require.NoError(t, err)
	cat := categorizer.NewCategorizer(
		[]categorizer.CategorizationStrategy{categorizer.NewKeywordStrategy(tables.Rules, categorizer.MatchFirst, nil)},
		bucket, nil)
	n := NewNormalizer(tables, cat, DefaultOptions(), nil)

	raw := table(
		canonicalHeader,
		cells{"", "", "알 수 없는 곳", "1000", "", "", "", "", ""},
		cells{"", "", "스타벅스", "1000", "", "", "", "", ""},
	)
	ledger, _, err := n.Normalize(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, models.Pair{Major: "기타", Minor: "기타"}, ledger[0].Category())
	assert.Equal(t, models.Pair{Major: "식비", Minor: "카페/간식"}, ledger[1].Category())
}

func TestNormalize_Idempotent(t *testing.T) {
	n, _ := newTestNormalizer(t)

	raw := table(
		cells{"2024년 지출"},
		cells{"거래일", "카드명", "가맹점명", "결제 금액", "할인금액", "메모", "카테고리"},
		cells{"2024.05.01 (수)", "신한", "스타벅스 역삼", "6,100원", "", "", ""},
		cells{45413.0, "현금", "동네 식당", 9000.0, 1000.0, "점심", ""},
		cells{"garbage", "삼성", "쿠팡", "-15,000", "", "환불", ""},
		cells{"2024/05/04", "신한", "미확인", "2,000", "", "", "해외"},
		cells{"2024-05-05 09:10:11", "신한", "택시", "12000", "", "", "식비"},
		cells{"", "", "합계", "", "", "", ""},
	)

	first, _, err := n.Normalize(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, first, 5)

	second, _, err := n.Normalize(context.Background(), first.ToRawTable())
	require.NoError(t, err)
	assert.True(t, first.Equal(second), "first=%v\nsecond=%v", first, second)

	assertNetInvariant(t, second)
	assertPairingInvariant(t, n.Tree(), second)
}

func TestNormalize_DegenerateInputs(t *testing.T) {
	n, _ := newTestNormalizer(t)

	t.Run("empty table", func(t *testing.T) {
		ledger, notices, err := n.Normalize(context.Background(), models.RawTable{})
		require.NoError(t, err)
		assert.Empty(t, ledger)
		assert.Empty(t, notices)
	})

	t.Run("header only", func(t *testing.T) {
		ledger, _, err := n.Normalize(context.Background(), table(canonicalHeader))
		require.NoError(t, err)
		assert.Empty(t, ledger)
	})

	t.Run("no gross column", func(t *testing.T) {
		ledger, _, err := n.Normalize(context.Background(), table(
			cells{"날짜", "내용"},
			cells{"2024-01-01", "x"},
		))
		require.NoError(t, err)
		assert.Empty(t, ledger)
	})
}

func TestNormalize_NotTabular(t *testing.T) {
	n, _ := newTestNormalizer(t)
	raw := table(
		canonicalHeader,
		cells{"2024-01-01", "", "x", map[string]int{"a": 1}},
	)

	_, _, err := n.Normalize(context.Background(), raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, parsererror.ErrNotTabular))

	var formatErr *parsererror.InvalidFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "test", formatErr.Source)
}

func TestNormalize_CancelledContext(t *testing.T) {
	n, _ := newTestNormalizer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := n.Normalize(ctx, table(canonicalHeader, cells{"", "", "x", "1"}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalize_CustomOptions(t *testing.T) {
	n := NewNormalizer(taxonomy.Default(), nil, Options{MinHeaderMatches: 3, CurrencySuffixes: []string{"USD"}}, nil)
	raw := table(
		cells{"날짜", "금액"},
		cells{"2024-01-01", "12.50 USD"},
	)
	assert.True(t, n.ResolveHeader(raw).Positional())

	raw = table(
		cells{"날짜", "결제수단", "내용", "금액"},
		cells{"2024-01-01", "card", "x", "12.50 USD"},
	)
	ledger, _, err := n.Normalize(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, "12.5", ledger[0].Gross.String())
}
