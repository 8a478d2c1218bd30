package content

import "dawang/internal/catalog"

const (
	welcomeText = "어서와! 내가 다 알려줄거다왕! 걱정하지마왕~"
	guideText   = "궁금한게 있다면 이런 식으로 질문해봐라왕~"
)

type descriptor struct {
	greeting string
	bullets  []string
}

var descriptors = map[catalog.ProgramID]descriptor{
	catalog.BigData: {
		greeting: "빅데이터 융합전공을 선택하다니! 탁월한 선택이다왕! 내가 빅데이터 융합전공에 대해 자세하게 알려주겠다왕!",
		bullets: []string{
			"빅데이터 분석 및 처리 기술을 전문적으로 학습",
			"데이터 사이언스, 머신러닝, AI 기술 습득",
			"실무 중심의 프로젝트 기반 교육과정 운영",
			"데이터 분석가, AI 엔지니어 등 다양한 진로 가능",
			"산업체 연계 실습 및 인턴십 기회 제공",
		},
	},
	catalog.IPSmartFusion: {
		greeting: "지식재산 스마트융합 전공을 선택하다니! 탁월한 선택이다왕! 내가 지식재산 스마트융합 전공에 대해 자세하게 알려주겠다왕!",
		bullets: []string{
			"지식재산권과 스마트 기술의 융합 전공",
			"특허, 상표, 저작권 등 지식재산 전문 지식 습득",
			"AI, IoT 등 스마트 기술과 법률의 결합",
			"지식재산 전문가, 변리사, 기업 IP 담당자 진로",
			"4차 산업혁명 시대의 핵심 인재 양성",
		},
	},
	catalog.CrisisManagement: {
		greeting: "위기관리 전공을 선택하다니! 탁월한 선택이다왕! 내가 위기관리 전공에 대해 자세하게 알려주겠다왕!",
		bullets: []string{
			"재난, 안전, 위기 상황 대응 전문가 양성",
			"위기관리 이론과 실무 능력 배양",
			"재난안전관리, 비상계획 수립 및 운영",
			"공공기관, 기업 안전관리 부서 진로",
			"실습 중심의 체계적인 교육과정 운영",
		},
	},
	catalog.SecurityConsult: {
		greeting: "보안컨설팅 전공을 선택하다니! 탁월한 선택이다왕! 내가 보안컨설팅 전공에 대해 자세하게 알려주겠다왕!",
		bullets: []string{
			"정보보안 및 컨설팅 전문가 양성 과정",
			"사이버 보안, 네트워크 보안 기술 습득",
			"보안 컨설팅 방법론 및 실무 교육",
			"정보보안 전문가, 보안 컨설턴트 진로",
			"다양한 보안 자격증 취득 지원",
		},
	},
	catalog.VentureBusiness: {
		greeting: "벤처비즈니스 전공을 선택하다니! 탁월한 선택이다왕! 내가 벤처비즈니스 전공에 대해 자세하게 알려주겠다왕!",
		bullets: []string{
			"창업 및 벤처 경영 실무 능력 배양",
			"비즈니스 모델 개발 및 사업계획 수립",
			"스타트업 생태계 이해 및 네트워킹",
			"창업가, 벤처 투자자, 혁신 관리자 진로",
			"실전 창업 프로젝트 및 멘토링 제공",
		},
	},
	catalog.SecondaryBattery: {
		greeting: "이차전지융합 전공을 선택하다니! 탁월한 선택이다왕! 내가 이차전지융합 전공에 대해 자세하게 알려주겠다왕!",
		bullets: []string{
			"차세대 에너지 저장 기술 전문 인재 양성",
			"배터리 기술, 전기화학, 소재 공학 학습",
			"전기차, ESS 등 실무 응용 기술 습득",
			"배터리 기업, 전기차 업체 연구개발 진로",
			"산업체 수요 맞춤형 교육과정 운영",
		},
	},
	catalog.PublicDataSci: {
		greeting: "공공데이터사이언스 전공을 선택하다니! 탁월한 선택이다왕! 내가 공공데이터사이언스 전공에 대해 자세하게 알려주겠다왕!",
		bullets: []string{
			"공공 부문의 데이터 분석 전문가 양성",
			"정책 수립 및 의사결정을 위한 데이터 활용",
			"공공데이터 수집, 분석, 시각화 기술 습득",
			"공공기관, 정부부처 데이터 분석가 진로",
			"사회문제 해결을 위한 데이터 기반 접근",
		},
	},
}

var generalExamples = []string{
	"융합전공이 뭐예요?",
	"충북대에 융합전공이 몇 개 있어요?",
	"가장 최근에 개설된 융합전공은?",
	"복수전공과 융합전공의 차이는?",
	"다전공 신청 자격이 어떻게 되나요?",
}

var generalQuickReplies = []QuickReply{
	{ID: "what", Label: "융합전공이란?", Question: "융합전공이 뭐예요?"},
	{ID: "list", Label: "전공 목록", Question: "어떤 융합전공들이 있나요?"},
	{ID: "difference", Label: "제도 차이", Question: "연계전공과 융합전공의 차이는?"},
	{ID: "apply", Label: "신청 방법", Question: "다전공 신청은 언제 하나요?"},
}
