package biome

import "fmt"

var registry = make(map[Biome]Info)

// Цвета и атрибуты категорий фиксированы на этапе компиляции:
// таблица статическая, пользовательские данные в неё не попадают.
func init() {
	Register(Water, Info{Name: "water", Color: Color{R: 0, G: 0, B: 200}, Walkable: false})
	Register(River, Info{Name: "river", Color: Color{R: 0, G: 50, B: 200}, Walkable: false})
	Register(Sand, Info{Name: "sand", Color: Color{R: 230, G: 220, B: 130}, Walkable: true})
	Register(Grass, Info{Name: "grass", Color: Color{R: 50, G: 200, B: 50}, Walkable: true})
	Register(Forest, Info{Name: "forest", Color: Color{R: 16, G: 100, B: 16}, Walkable: true})
	Register(Rock, Info{Name: "rock", Color: Color{R: 130, G: 130, B: 130}, Walkable: true})

	if len(registry) != int(biomeCount) {
		panic(fmt.Sprintf("biome: зарегистрировано %d категорий из %d", len(registry), biomeCount))
	}
}

// Register добавляет атрибуты категории в регистр.
// Повторная регистрация категории — ошибка программирования.
func Register(b Biome, info Info) {
	if _, exists := registry[b]; exists {
		panic(fmt.Sprintf("biome: категория %d уже зарегистрирована", b))
	}
	registry[b] = info
}

// Get возвращает атрибуты для указанной категории
func Get(b Biome) (Info, bool) {
	info, exists := registry[b]
	return info, exists
}

// MustGet возвращает атрибуты категории или паникует для значения вне перечисления
func MustGet(b Biome) Info {
	info, exists := registry[b]
	if !exists {
		panic(fmt.Sprintf("biome: неизвестная категория %d", b))
	}
	return info
}

// IsValid проверяет, входит ли значение в закрытое перечисление
func IsValid(b Biome) bool {
	_, exists := registry[b]
	return exists
}

// ByName возвращает категорию по имени (для конфигурации и инструментов)
func ByName(name string) (Biome, bool) {
	for b, info := range registry {
		if info.Name == name {
			return b, true
		}
	}
	return 0, false
}

// All возвращает все зарегистрированные категории в порядке перечисления
func All() []Biome {
	result := make([]Biome, 0, len(registry))
	for b := Biome(0); b < biomeCount; b++ {
		if _, exists := registry[b]; exists {
			result = append(result, b)
		}
	}
	return result
}
