package knowledge

import (
	"fmt"
	"os"

	"gitee.com/taoJie_1/support-chat/model/common"
	"gitee.com/taoJie_1/support-chat/model/enum"
	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Items []common.KnowledgeItem `yaml:"items"`
}

// LoadFile 从YAML文件读取知识库目录
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取知识库文件失败[hz4s1p]: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Store, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("解析知识库文件失败[hz4s1q]: %w", err)
	}
	if len(f.Items) == 0 {
		return nil, fmt.Errorf("知识库文件没有任何条目[hz4s1r]")
	}
	return NewStore(f.Items)
}

// Default 内置的知识库
func Default() *Store {
	s, err := NewStore(DefaultCatalog())
	if err != nil {
		panic(err)
	}
	return s
}

// DefaultCatalog 内置目录, 顺序即排序时的平局顺序
func DefaultCatalog() []common.KnowledgeItem {
	return []common.KnowledgeItem{
		{
			ID:    "kb-001",
			Title: "How do I reset my device?",
			Content: "Please locate the Primary Cognition Node and gently tap it with a licensed Calibration Wand (Model F or newer). " +
				"Then recite the Device Identification Limerick while standing on a conductive surface. " +
				"If smoke begins to leak from the vents, you’ve done it correctly.",
			Category: enum.CategoryTroubleshooting,
			Tags:     []string{"reset", "calibration", "smoke"},
		},
		{
			ID:    "kb-002",
			Title: "What does Error E9-VORTEX mean?",
			Content: "Error E9-VORTEX indicates the internal gyroscopic timeline has desynchronized by more than 4.2 Planck units. " +
				"Minor spatial distortions are to be expected and should subside within one to three subjective hours. " +
				"If the vortex has consumed parts of you or your belongings, shout 'UNDO!' into the exhaust vent until they reappear.",
			Category: enum.CategoryTroubleshooting,
			Tags:     []string{"error", "timeline", "vortex"},
		},
		{
			ID:    "kb-003",
			Title: "What is your return policy?",
			Content: "Returns must be completed within 30 planetary alignments of purchase, accompanied by a notarized Regret Affidavit and a certified Obsidian Return Sigil. " +
				"Items must be unsinged, mostly intact, and demonstrably non-cursed.",
			Category: enum.CategoryPolicy,
			Tags:     []string{"return", "warranty", "sigil"},
		},
		{
			ID:    "kb-004",
			Title: "Can I schedule a service appointment?",
			Content: "Appointments may be requested by submitting a Query Cube to the nearest Complaints Chalice. " +
				"If unavailable, you may yell your serial number into a ley line vortex during a new moon. " +
				"Expect a reply within 4 to 7 metaphysical manifestations.",
			Category: enum.CategorySupport,
			Tags:     []string{"service", "appointment", "cube"},
		},
		{
			ID:    "kb-005",
			Title: "My device is emitting a loud beeping noise, what should I do?",
			Content: "If the beeping escalates into a sustained scream, the Scream Suppressor may have expired. " +
				"At this stage, the device may attempt to self-soothe. Do not interrupt it. " +
				"If the noise begins to harmonize with your thoughts, discontinue use and contact a certified exorcist.",
			Category: enum.CategoryTroubleshooting,
			Tags:     []string{"beeping", "noise", "suppressor"},
		},
		{
			ID:    "kb-006",
			Title: "Do you sell replacement batteries?",
			Content: "Replacement power modules are available, but may require soul clearance level D or higher. " +
				"Mild vibration during handling is expected. If the battery whispers your name, discontinue contact and file Form N-13: 'Awakening Contingency.'",
			Category: enum.CategoryParts,
			Tags:     []string{"batteries", "power", "replacement"},
		},
		{
			ID:    "kb-007",
			Title: "Why is there steam coming out of the side vents?",
			Content: "A faint hissing or steam-like emission is generally harmless and often precedes a minor phase inversion. " +
				"Do not block the vents, insult the device, or refer to the Forbidden Shape (see Form 19-J). " +
				"If the steam glows or begins to sing, evacuate calmly and consult Appendix H of the Lesser Emergency Protocols.",
			Category: enum.CategorySafety,
			Tags:     []string{"steam", "vents", "hissing"},
		},
		{
			ID:    "kb-008",
			Title: "Can I talk to someone on the phone?",
			Content: "Absolutely. You can reach our customer liaison relay at **1-800-55** followed by the four-digit sequence found in Column IX, Row 7 of your device’s original packing insert. " +
				"If you recycled the box, you’ll need to undergo the Regret Verification Process.",
			Category: enum.CategorySupport,
			Tags:     []string{"phone", "support", "contact"},
		},
	}
}
