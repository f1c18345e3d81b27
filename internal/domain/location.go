package domain

// District of a city
type District struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// City with its selectable districts
type City struct {
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Districts []District `json:"districts"`
}

// Cities is the catalog the activity form and search accept
var Cities = []City{
	{Code: "TAIPEI", Name: "臺北市", Districts: []District{
		{Code: "ZHONGZHENG", Name: "中正區"},
		{Code: "DATONG", Name: "大同區"},
		{Code: "ZHONGSHAN", Name: "中山區"},
		{Code: "SONGSHAN", Name: "松山區"},
		{Code: "DAAN", Name: "大安區"},
		{Code: "WANHUA", Name: "萬華區"},
		{Code: "XINYI", Name: "信義區"},
		{Code: "SHILIN", Name: "士林區"},
		{Code: "BEITOU", Name: "北投區"},
		{Code: "NEIHU", Name: "內湖區"},
		{Code: "NANGANG", Name: "南港區"},
		{Code: "WENSHAN", Name: "文山區"},
	}},
	{Code: "NEW_TAIPEI", Name: "新北市", Districts: []District{
		{Code: "BANQIAO", Name: "板橋區"},
		{Code: "SANCHONG", Name: "三重區"},
		{Code: "ZHONGHE", Name: "中和區"},
		{Code: "YONGHE", Name: "永和區"},
		{Code: "XINZHUANG", Name: "新莊區"},
		{Code: "XINDIAN", Name: "新店區"},
		{Code: "TUCHENG", Name: "土城區"},
		{Code: "LUZHOU", Name: "蘆洲區"},
		{Code: "SHULIN", Name: "樹林區"},
		{Code: "XIZHI", Name: "汐止區"},
		{Code: "TAMSUI", Name: "淡水區"},
		{Code: "LINKOU", Name: "林口區"},
	}},
	{Code: "TAOYUAN", Name: "桃園市", Districts: []District{
		{Code: "TAOYUAN", Name: "桃園區"},
		{Code: "ZHONGLI", Name: "中壢區"},
		{Code: "PINGZHEN", Name: "平鎮區"},
		{Code: "BADE", Name: "八德區"},
		{Code: "GUISHAN", Name: "龜山區"},
	}},
	{Code: "HSINCHU", Name: "新竹市", Districts: []District{
		{Code: "EAST", Name: "東區"},
		{Code: "NORTH", Name: "北區"},
		{Code: "XIANGSHAN", Name: "香山區"},
	}},
	{Code: "TAICHUNG", Name: "臺中市", Districts: []District{
		{Code: "CENTRAL", Name: "中區"},
		{Code: "WEST", Name: "西區"},
		{Code: "NORTH", Name: "北區"},
		{Code: "XITUN", Name: "西屯區"},
		{Code: "NANTUN", Name: "南屯區"},
		{Code: "BEITUN", Name: "北屯區"},
	}},
	{Code: "TAINAN", Name: "臺南市", Districts: []District{
		{Code: "EAST", Name: "東區"},
		{Code: "NORTH", Name: "北區"},
		{Code: "ANPING", Name: "安平區"},
		{Code: "YONGKANG", Name: "永康區"},
	}},
	{Code: "KAOHSIUNG", Name: "高雄市", Districts: []District{
		{Code: "XINXING", Name: "新興區"},
		{Code: "LINGYA", Name: "苓雅區"},
		{Code: "GUSHAN", Name: "鼓山區"},
		{Code: "ZUOYING", Name: "左營區"},
		{Code: "SANMIN", Name: "三民區"},
		{Code: "QIANZHEN", Name: "前鎮區"},
	}},
}

// FindCity returns the city with the given code
func FindCity(code string) (City, bool) {
	if code == "" {
		return City{}, false
	}
	for _, c := range Cities {
		if c.Code == code {
			return c, true
		}
	}
	return City{}, false
}

// FindDistrict returns the district of cityCode with the given code
func FindDistrict(cityCode, districtCode string) (District, bool) {
	if districtCode == "" {
		return District{}, false
	}
	city, ok := FindCity(cityCode)
	if !ok {
		return District{}, false
	}
	for _, d := range city.Districts {
		if d.Code == districtCode {
			return d, true
		}
	}
	return District{}, false
}
