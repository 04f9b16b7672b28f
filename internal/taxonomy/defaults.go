package taxonomy

import "gagyebu/ledger-csv/internal/models"

// Category names referenced outside the default tables.
const (
	MajorOther = "기타"
	MinorOther = "기타"
)

var defaultBranches = []Branch{
	{Major: "주거", Minors: []string{"월세", "관리비", "공과금", "인터넷/통신", "가구/가전"}},
	{Major: "식비", Minors: []string{"식료품", "외식", "카페/간식", "배달"}},
	{Major: "교통", Minors: []string{"대중교통", "택시", "주유", "주차/통행료", "차량정비"}},
	{Major: "생활", Minors: []string{"생필품", "의류/미용", "세탁", "반려동물"}},
	{Major: "건강", Minors: []string{"병원", "약국", "운동"}},
	{Major: "문화/여가", Minors: []string{"구독", "영화/공연", "여행", "취미", "도서"}},
	{Major: "교육", Minors: []string{"학원/강의", "교재", "도서"}},
	{Major: "경조사/선물", Minors: []string{"경조사", "선물"}},
	{Major: "금융", Minors: []string{"보험", "이자", "수수료", "저축/투자"}},
	{Major: MajorOther, Minors: []string{MinorOther, "시발/멍청비용"}},
}

var defaultAliases = HeaderAliases{
	"날짜":    models.FieldDate,
	"일자":    models.FieldDate,
	"거래일":   models.FieldDate,
	"거래일자":  models.FieldDate,
	"거래일시":  models.FieldDate,
	"사용일":   models.FieldDate,
	"사용일자":  models.FieldDate,
	"이용일":   models.FieldDate,
	"이용일자":  models.FieldDate,
	"결제일":   models.FieldDate,
	"결제수단":  models.FieldPaymentMethod,
	"결제 수단": models.FieldPaymentMethod,
	"결제방법":  models.FieldPaymentMethod,
	"지불수단":  models.FieldPaymentMethod,
	"카드":    models.FieldPaymentMethod,
	"카드명":   models.FieldPaymentMethod,
	"지출 내용": models.FieldDescription,
	"지출내용":  models.FieldDescription,
	"내용":    models.FieldDescription,
	"내역":    models.FieldDescription,
	"사용처":   models.FieldDescription,
	"가맹점":   models.FieldDescription,
	"가맹점명":  models.FieldDescription,
	"이용내역":  models.FieldDescription,
	"적요":    models.FieldDescription,
	"결제금액":  models.FieldGross,
	"결제 금액": models.FieldGross,
	"금액":    models.FieldGross,
	"사용금액":  models.FieldGross,
	"이용금액":  models.FieldGross,
	"지출금액":  models.FieldGross,
	"출금액":   models.FieldGross,
	"대분류":   models.FieldMajor,
	"카테고리":  models.FieldMajor,
	"분류":    models.FieldMajor,
	"소분류":   models.FieldMinor,
	"세부분류":  models.FieldMinor,
	"세부 분류": models.FieldMinor,
	"할인":    models.FieldDiscount,
	"할인금액":  models.FieldDiscount,
	"할인 금액": models.FieldDiscount,
	"할인액":   models.FieldDiscount,
	"실지출":   models.FieldNet,
	"실 지출":  models.FieldNet,
	"실지출액":  models.FieldNet,
	"순지출":   models.FieldNet,
	"비고":    models.FieldNote,
	"메모":    models.FieldNote,
	"참고":    models.FieldNote,
}

// Keyword order matters: more specific brands precede the generic words they
// contain (쿠팡이츠 before 쿠팡, 동물병원 before 병원).
var defaultRules = ClassifierTable{
	{Keyword: "월세", Major: "주거", Minor: "월세"},
	{Keyword: "관리비", Major: "주거", Minor: "관리비"},
	{Keyword: "전기요금", Major: "주거", Minor: "공과금"},
	{Keyword: "가스요금", Major: "주거", Minor: "공과금"},
	{Keyword: "도시가스", Major: "주거", Minor: "공과금"},
	{Keyword: "수도요금", Major: "주거", Minor: "공과금"},
	{Keyword: "인터넷", Major: "주거", Minor: "인터넷/통신"},
	{Keyword: "휴대폰", Major: "주거", Minor: "인터넷/통신"},
	{Keyword: "lg유플러스", Major: "주거", Minor: "인터넷/통신"},
	{Keyword: "이케아", Major: "주거", Minor: "가구/가전"},
	{Keyword: "배달의민족", Major: "식비", Minor: "배달"},
	{Keyword: "배민", Major: "식비", Minor: "배달"},
	{Keyword: "요기요", Major: "식비", Minor: "배달"},
	{Keyword: "쿠팡이츠", Major: "식비", Minor: "배달"},
	{Keyword: "쿠팡프레시", Major: "식비", Minor: "식료품"},
	{Keyword: "마켓컬리", Major: "식비", Minor: "식료품"},
	{Keyword: "이마트", Major: "식비", Minor: "식료품"},
	{Keyword: "홈플러스", Major: "식비", Minor: "식료품"},
	{Keyword: "롯데마트", Major: "식비", Minor: "식료품"},
	{Keyword: "코스트코", Major: "식비", Minor: "식료품"},
	{Keyword: "마트", Major: "식비", Minor: "식료품"},
	{Keyword: "스타벅스", Major: "식비", Minor: "카페/간식"},
	{Keyword: "투썸", Major: "식비", Minor: "카페/간식"},
	{Keyword: "이디야", Major: "식비", Minor: "카페/간식"},
	{Keyword: "메가커피", Major: "식비", Minor: "카페/간식"},
	{Keyword: "커피", Major: "식비", Minor: "카페/간식"},
	{Keyword: "카페", Major: "식비", Minor: "카페/간식"},
	{Keyword: "베이커리", Major: "식비", Minor: "카페/간식"},
	{Keyword: "파리바게뜨", Major: "식비", Minor: "카페/간식"},
	{Keyword: "편의점", Major: "식비", Minor: "카페/간식"},
	{Keyword: "gs25", Major: "식비", Minor: "카페/간식"},
	{Keyword: "맥도날드", Major: "식비", Minor: "외식"},
	{Keyword: "버거킹", Major: "식비", Minor: "외식"},
	{Keyword: "김밥", Major: "식비", Minor: "외식"},
	{Keyword: "치킨", Major: "식비", Minor: "외식"},
	{Keyword: "피자", Major: "식비", Minor: "외식"},
	{Keyword: "식당", Major: "식비", Minor: "외식"},
	{Keyword: "지하철", Major: "교통", Minor: "대중교통"},
	{Keyword: "버스", Major: "교통", Minor: "대중교통"},
	{Keyword: "티머니", Major: "교통", Minor: "대중교통"},
	{Keyword: "교통카드", Major: "교통", Minor: "대중교통"},
	{Keyword: "코레일", Major: "교통", Minor: "대중교통"},
	{Keyword: "ktx", Major: "교통", Minor: "대중교통"},
	{Keyword: "택시", Major: "교통", Minor: "택시"},
	{Keyword: "카카오t", Major: "교통", Minor: "택시"},
	{Keyword: "주유", Major: "교통", Minor: "주유"},
	{Keyword: "sk에너지", Major: "교통", Minor: "주유"},
	{Keyword: "gs칼텍스", Major: "교통", Minor: "주유"},
	{Keyword: "주차", Major: "교통", Minor: "주차/통행료"},
	{Keyword: "하이패스", Major: "교통", Minor: "주차/통행료"},
	{Keyword: "통행료", Major: "교통", Minor: "주차/통행료"},
	{Keyword: "세차", Major: "교통", Minor: "차량정비"},
	{Keyword: "정비", Major: "교통", Minor: "차량정비"},
	{Keyword: "동물병원", Major: "생활", Minor: "반려동물"},
	{Keyword: "사료", Major: "생활", Minor: "반려동물"},
	{Keyword: "다이소", Major: "생활", Minor: "생필품"},
	{Keyword: "쿠팡", Major: "생활", Minor: "생필품"},
	{Keyword: "올리브영", Major: "생활", Minor: "의류/미용"},
	{Keyword: "유니클로", Major: "생활", Minor: "의류/미용"},
	{Keyword: "무신사", Major: "생활", Minor: "의류/미용"},
	{Keyword: "미용실", Major: "생활", Minor: "의류/미용"},
	{Keyword: "세탁", Major: "생활", Minor: "세탁"},
	{Keyword: "병원", Major: "건강", Minor: "병원"},
	{Keyword: "의원", Major: "건강", Minor: "병원"},
	{Keyword: "치과", Major: "건강", Minor: "병원"},
	{Keyword: "약국", Major: "건강", Minor: "약국"},
	{Keyword: "헬스", Major: "건강", Minor: "운동"},
	{Keyword: "필라테스", Major: "건강", Minor: "운동"},
	{Keyword: "요가", Major: "건강", Minor: "운동"},
	{Keyword: "넷플릭스", Major: "문화/여가", Minor: "구독"},
	{Keyword: "유튜브", Major: "문화/여가", Minor: "구독"},
	{Keyword: "멜론", Major: "문화/여가", Minor: "구독"},
	{Keyword: "스포티파이", Major: "문화/여가", Minor: "구독"},
	{Keyword: "cgv", Major: "문화/여가", Minor: "영화/공연"},
	{Keyword: "메가박스", Major: "문화/여가", Minor: "영화/공연"},
	{Keyword: "롯데시네마", Major: "문화/여가", Minor: "영화/공연"},
	{Keyword: "공연", Major: "문화/여가", Minor: "영화/공연"},
	{Keyword: "항공", Major: "문화/여가", Minor: "여행"},
	{Keyword: "호텔", Major: "문화/여가", Minor: "여행"},
	{Keyword: "에어비앤비", Major: "문화/여가", Minor: "여행"},
	{Keyword: "교보문고", Major: "문화/여가", Minor: "도서"},
	{Keyword: "알라딘", Major: "문화/여가", Minor: "도서"},
	{Keyword: "yes24", Major: "문화/여가", Minor: "도서"},
	{Keyword: "학원", Major: "교육", Minor: "학원/강의"},
	{Keyword: "인강", Major: "교육", Minor: "학원/강의"},
	{Keyword: "클래스101", Major: "교육", Minor: "학원/강의"},
	{Keyword: "축의금", Major: "경조사/선물", Minor: "경조사"},
	{Keyword: "조의금", Major: "경조사/선물", Minor: "경조사"},
	{Keyword: "부의금", Major: "경조사/선물", Minor: "경조사"},
	{Keyword: "꽃집", Major: "경조사/선물", Minor: "선물"},
	{Keyword: "선물", Major: "경조사/선물", Minor: "선물"},
	{Keyword: "보험", Major: "금융", Minor: "보험"},
	{Keyword: "이자", Major: "금융", Minor: "이자"},
	{Keyword: "수수료", Major: "금융", Minor: "수수료"},
	{Keyword: "적금", Major: "금융", Minor: "저축/투자"},
}

// Default returns fresh copies of the built-in tables.
func Default() Tables {
	return Tables{
		Tree:    MustTree(defaultBranches),
		Aliases: defaultAliases.Clone(),
		Rules:   defaultRules.Clone(),
	}
}

// DefaultAliases returns the built-in header vocabulary. Every canonical field
// name is its own alias.
func DefaultAliases() HeaderAliases {
	return defaultAliases.Clone()
}
