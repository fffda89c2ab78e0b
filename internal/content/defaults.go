package content

import "time"

// StorageKey 是内容文档在后端存储中使用的固定键。
const StorageKey = "saklain-portfolio-cms"

// seedCreatedAt 固定种子数据的创建时间，保证两次 Default() 的结果深度相等。
var seedCreatedAt = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// Default 返回一份全新的默认文档（含种子项目与技能）。
func Default() Document {
	return Document{
		SchemaVersion: CurrentSchemaVersion,
		Projects: []Project{
			{
				ID:          "1",
				Name:        "MINTAIR",
				Category:    "Web3 Platform Launch",
				Description: "Promotional reels and launch visuals for NFT infrastructure platform.",
				Color:       "#00D4FF",
				BgGradient:  "from-[#00D4FF]/20 to-transparent",
				CreatedAt:   seedCreatedAt,
			},
			{
				ID:          "2",
				Name:        "REEF CHAIN",
				Category:    "Blockchain Marketing",
				Description: "Community content and exchange-style marketing for Layer 1 blockchain.",
				Color:       "#7928CA",
				BgGradient:  "from-[#7928CA]/20 to-transparent",
				CreatedAt:   seedCreatedAt,
			},
			{
				ID:          "3",
				Name:        "KOKOPAI",
				Category:    "AI/Art Project",
				Description: "Creative direction and video content for AI art platform.",
				Color:       "#FF0080",
				BgGradient:  "from-[#FF0080]/20 to-transparent",
				CreatedAt:   seedCreatedAt,
			},
			{
				ID:          "4",
				Name:        "THE CANDLESTICK TRADES",
				Category:    "Trading Education",
				Description: "Technical analysis content and trading education visuals.",
				Color:       "#FFD700",
				BgGradient:  "from-[#FFD700]/20 to-transparent",
				CreatedAt:   seedCreatedAt,
			},
		},
		Skills: []Skill{
			{ID: "1", Name: "3D Animation & Motion Design", Category: CategoryCreative, CreatedAt: seedCreatedAt},
			{ID: "2", Name: "AI Video Generation & Editing", Category: CategoryCreative, CreatedAt: seedCreatedAt},
			{ID: "3", Name: "Crypto Marketing & Community", Category: CategoryMarketing, CreatedAt: seedCreatedAt},
			{ID: "4", Name: "Technical Analysis (TradingView)", Category: CategoryFinance, CreatedAt: seedCreatedAt},
			{ID: "5", Name: "Event Coverage & Livestream", Category: CategoryProduction, CreatedAt: seedCreatedAt},
		},
		MyWorks: []MyWork{},
		Hero: &Hero{
			Subtitle:    "WEB3 CONTENT CREATOR & CREATIVE PRODUCER",
			Tagline:     "NOT JUST CONTENT. CULTURE.",
			Title:       "SAKLAIN",
			Description: "Creating 3D animations, AI-generated videos, and crypto-native content for Web3 brands.",
		},
		Contact: &Contact{
			Phone:    "",
			Email:    "",
			Location: "Based in Dubai",
			LinkedIn: "linkedin.com/in/md-saklain-jawed",
		},
		About: &About{
			Bio: "I'm a Web3 content creator and creative producer with hands-on experience working with " +
				"blockchain and crypto brands through DappRush Studios. Specialized in 3D animations, " +
				"AI-generated videos, and short-form digital content tailored for crypto marketing, " +
				"community engagement, and livestream promotion.",
			Location:          "Dubai, UAE",
			YearsExperience:   "3+",
			ProjectsCompleted: "50+",
			Web3Brands:        "10+",
		},
	}
}
