// Package condition maps WeatherAPI.com condition codes onto display classes,
// backdrop images and icon codes. Everything here is pure and safe for concurrent use.
package condition

import "sort"

var codeClasses = buildCodeClasses(map[Class][]WeatherCode{
	Clear:        {1000},
	PartlyCloudy: {1003},
	Cloudy:       {1006},
	Overcast:     {1009},
	Fog:          {1030, 1135, 1147},
	RainLike: {
		1063, 1150, 1153, 1168, 1171,
		1180, 1183, 1186, 1189, 1192, 1195, 1198, 1201,
		1240, 1243, 1246,
	},
	SnowLike: {
		1066, 1069, 1072,
		1114, 1117,
		1204, 1207,
		1210, 1213, 1216, 1219, 1222, 1225,
		1237,
		1249, 1252,
		1255, 1258,
		1261, 1264,
	},
	ThunderLike: {1087, 1273, 1276, 1279, 1282},
})

// buildCodeClasses inverts the class table. It panics on a code listed twice so
// the partition can never silently overlap.
func buildCodeClasses(table map[Class][]WeatherCode) map[WeatherCode]Class {
	index := make(map[WeatherCode]Class)
	for class, codes := range table {
		for _, code := range codes {
			if prev, dup := index[code]; dup {
				panic("condition: code listed in both " + prev.String() + " and " + class.String())
			}
			index[code] = class
		}
	}
	return index
}

// Lookup returns the class for a known code. Unknown codes report Clear and false.
func Lookup(code WeatherCode) (Class, bool) {
	class, ok := codeClasses[code]
	if !ok {
		return Clear, false
	}
	return class, true
}

// KnownCodes returns every code of the given class
func KnownCodes(class Class) []WeatherCode {
	var codes []WeatherCode
	for code, c := range codeClasses {
		if c == class {
			codes = append(codes, code)
		}
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Classify derives the display asset for a condition code. It never fails:
// unrecognized codes fall back to the Clear icon with the default backdrop.
func Classify(code WeatherCode, phase DayPhase) DisplayAsset {
	class, recognized := Lookup(code)

	background := BackgroundDefault
	if recognized {
		background = backgroundFor(class, phase)
	}

	return DisplayAsset{
		Code:       code,
		Phase:      phase,
		Class:      class,
		Recognized: recognized,
		Background: background,
		IconCode:   class.IconPrefix() + phase.suffix(),
	}
}

// backgroundFor picks the backdrop for a recognized class. The cloud group shares
// the clear-night image after dark.
func backgroundFor(class Class, phase DayPhase) Background {
	switch class {
	case Clear:
		if phase == Day {
			return BackgroundClearDay
		}
		return BackgroundClearNight
	case PartlyCloudy, Cloudy, Overcast:
		if phase == Day {
			return BackgroundCloudyDay
		}
		return BackgroundClearNight
	case Fog:
		return BackgroundFog
	case RainLike:
		return BackgroundRain
	case SnowLike:
		return BackgroundSnow
	case ThunderLike:
		return BackgroundThunder
	default:
		return BackgroundDefault
	}
}
