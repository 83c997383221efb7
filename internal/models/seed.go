package models

// SeedProducts is the built-in sample catalog. It is served whenever the
// database is unreachable so the storefront keeps rendering; order creation
// still fails in that state.
func SeedProducts() []Product {
	return []Product{
		{
			ID:            1,
			Name:          "단팥빵",
			NameEn:        "Red Bean Bread",
			Category:      CategoryBread,
			Description:   "전통 방식으로 만든 부드러운 단팥빵",
			DescriptionEn: "Traditional soft red bean bread",
			Price:         3500,
			Image:         "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=400&h=300&fit=crop",
			Available:     true,
		},
		{
			ID:            2,
			Name:          "크림빵",
			NameEn:        "Cream Bread",
			Category:      CategoryBread,
			Description:   "고소한 크림이 가득한 빵",
			DescriptionEn: "Bread filled with rich cream",
			Price:         4000,
			Image:         "https://images.unsplash.com/photo-1608198093002-ad4e005484ec?w=400&h=300&fit=crop",
			Available:     true,
		},
		{
			ID:            3,
			Name:          "소보로빵",
			NameEn:        "Soboro Bread",
			Category:      CategoryBread,
			Description:   "바삭한 소보로가 올라간 달콤한 빵",
			DescriptionEn: "Sweet bread topped with crispy streusel",
			Price:         3800,
			Image:         "https://images.unsplash.com/photo-1558961363-fa8fdf82db35?w=400&h=300&fit=crop",
			Available:     true,
		},
		{
			ID:            4,
			Name:          "앙버터",
			NameEn:        "Anpan Butter",
			Category:      CategoryBread,
			Description:   "프랑스 빵에 단팥과 버터를 넣은 시그니처 빵",
			DescriptionEn: "French bread with red bean paste and butter",
			Price:         5500,
			Image:         "https://images.unsplash.com/photo-1549931319-a545dcf3bc73?w=400&h=300&fit=crop",
			Available:     true,
		},
		{
			ID:            5,
			Name:          "인절미",
			NameEn:        "Injeolmi",
			Category:      CategoryRiceCake,
			Description:   "콩가루를 듬뿍 묻힌 쫄깃한 떡",
			DescriptionEn: "Chewy rice cake coated with roasted soybean powder",
			Price:         5000,
			Image:         "https://images.unsplash.com/photo-1563245372-a52e1da11c92?w=400&h=300&fit=crop",
			Available:     true,
		},
		{
			ID:            6,
			Name:          "송편",
			NameEn:        "Songpyeon",
			Category:      CategoryRiceCake,
			Description:   "계절의 맛을 담은 전통 송편",
			DescriptionEn: "Traditional half-moon shaped rice cake",
			Price:         6000,
			Image:         "https://images.unsplash.com/photo-1626776877530-873b74725e19?w=400&h=300&fit=crop",
			Available:     true,
		},
		{
			ID:            7,
			Name:          "백설기",
			NameEn:        "Baekseolgi",
			Category:      CategoryRiceCake,
			Description:   "부드러운 쌀가루로 만든 하얀 떡",
			DescriptionEn: "Soft white rice cake",
			Price:         4500,
			Image:         "https://images.unsplash.com/photo-1614187479000-25f471893ba0?w=400&h=300&fit=crop",
			Available:     true,
		},
		{
			ID:            8,
			Name:          "약과",
			NameEn:        "Yakgwa",
			Category:      CategoryTraditional,
			Description:   "꿀과 참기름이 어우러진 전통 과자",
			DescriptionEn: "Traditional honey cookie",
			Price:         4500,
			Image:         "https://images.unsplash.com/photo-1618897796318-bd5f23e226e5?w=400&h=300&fit=crop",
			Available:     true,
		},
		{
			ID:            9,
			Name:          "한과 세트",
			NameEn:        "Hangwa Set",
			Category:      CategoryTraditional,
			Description:   "다양한 전통 한과를 모은 선물 세트",
			DescriptionEn: "Assorted traditional Korean sweets gift set",
			Price:         15000,
			Image:         "https://images.unsplash.com/photo-1608848461950-0fe51dfc41cb?w=400&h=300&fit=crop",
			Available:     true,
		},
	}
}

// SiteInfo is the static cafe metadata served by /api/info.
func SiteInfo() CafeInfo {
	return CafeInfo{
		Name:          "새재당",
		NameEn:        "SaeJaeDang",
		Tagline:       "전통과 현대가 만나는 곳",
		TaglineEn:     "Where tradition meets modernity",
		Description:   "새재당은 우리의 전통 방식을 고수하면서도 현대적인 감각을 더한 카페 베이커리입니다. 정성스럽게 만든 빵과 전통 떡을 통해 한국의 맛과 정을 전합니다.",
		DescriptionEn: "SaeJaeDang is a cafe bakery that combines traditional Korean methods with modern sensibilities. We share Korean flavors and warmth through our carefully crafted breads and traditional rice cakes.",
		Contact: CafeContact{
			Instagram:    "@saejaedang",
			InstagramURL: "https://www.instagram.com/saejaedang/",
			Email:        "info@saejaedang.com",
			Phone:        "+82-2-1234-5678",
			Address:      "서울특별시 강남구",
			AddressEn:    "Gangnam-gu, Seoul, South Korea",
		},
	}
}
