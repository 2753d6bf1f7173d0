package generation

import (
	"fmt"
	"hash/fnv"
)

// Canned fallback content. Loaded once as immutable reference data; variants
// are selected by a deterministic hash of the prompt so fallback output is
// reproducible.

// CanonicalExampleText replaces raw generator output that is too short to be
// usable. It contains all seven labeled sections.
const CanonicalExampleText = `Univers: Dans un monde mystérieux où magie et technologie coexistent, les héros doivent découvrir les secrets du passé pour sauver l'avenir.

Acte I: Le protagoniste découvre un artefact ancien qui révèle une prophétie oubliée. Des forces obscures se réveillent et menacent l'équilibre du monde.

Acte II: Les héros rassemblent des alliés et découvrent la véritable nature de la menace. Des révélations choquantes remettent en question tout ce qu'ils croyaient savoir.

Acte III: Dans une confrontation épique, les héros doivent faire des choix difficiles qui détermineront le destin du monde et de tous ses habitants.

Twist: L'ennemi principal était en réalité un ancien héros corrompu, et le seul moyen de le vaincre nécessite un sacrifice ultime.

Personnages: [Ayla - Mage/Contrôle - Gardienne des secrets anciens], [Riven - Guerrier/Tank - Protecteur loyal du groupe], [Zara - Voleuse/Dégâts - Espionne aux motivations mystérieuses], [Kai - Clerc/Soins - Guérisseur sage et patient]

Lieux: Le Temple Oublié (sanctuaire ancien rempli de mystères), La Cité Flottante (métropole suspendue dans les nuages), Les Grottes Cristallines (cavernes aux pouvoirs magiques), L'Arène Temporelle (lieu où le temps s'écoule différemment)`

// Per-field fallbacks used when a section is missing after parsing.
const (
	FallbackUniverse = "Un monde fantastique rempli de mystères et d'aventures où les héros doivent affronter des défis extraordinaires."
	FallbackAct1     = "Le protagoniste découvre sa destinée et entame une quête périlleuse pour sauver son monde."
	FallbackAct2     = "Des révélations changent la donne et les héros doivent surmonter de nouveaux obstacles."
	FallbackAct3     = "La confrontation finale détermine le sort du monde et l'accomplissement de la prophétie."
	FallbackTwist    = "Un allié se révèle être l'ennemi, et le véritable pouvoir vient de l'intérieur du héros."
)

// FallbackCharacters is used when no character entries are recoverable.
var FallbackCharacters = []string{
	"Héros - Protagoniste/Leader - Destiné à sauver le monde",
	"Mentor - Sage/Guide - Détient les connaissances anciennes",
	"Allié - Guerrier/Combat - Fidèle compagnon d'armes",
	"Oracle - Mystique/Magie - Voit l'avenir et guide les choix",
}

// FallbackLocations is used when no location entries are recoverable.
var FallbackLocations = []string{
	"Le Village Natal (point de départ paisible)",
	"La Forêt Enchantée (lieu mystique plein de dangers)",
	"Le Château du Mal (forteresse de l'antagoniste)",
	"Le Temple Final (lieu de la confrontation ultime)",
}

// Variant tables for the deterministic fallback generator.
var fallbackUniverses = []string{
	"Dans un monde où la technologie et la magie s'entremêlent, les cités verticales dominent un paysage de ruines anciennes. L'équilibre fragile entre les corporations et les mages rebelles menace de s'effondrer à tout moment.",
	"Un royaume flottant suspendu au-dessus des nuages, où les cristaux d'énergie alimentent une civilisation avancée. Mais les cristaux s'éteignent un à un, plongeant le monde dans l'obscurité.",
	"Une métropole cyberpunk où les hackers se battent contre des IA corrompues pour le contrôle du réseau neural global. La réalité et le virtuel se mélangent dangereusement.",
	"Un monde post-apocalyptique où la nature a repris ses droits, et où les derniers humains coexistent avec des créatures mutantes dans des cités-jardins fortifiées.",
}

var fallbackAct1s = []string{
	"Le protagoniste découvre un artefact mystérieux qui attire l'attention d'une faction secrète. Des événements étranges se multiplient dans la ville, révélant l'existence d'un complot plus vaste.",
	"Une série de disparitions inexpliquées mène le héros à découvrir un portail vers une dimension parallèle. Mais quelque chose de dangereux commence à traverser dans l'autre sens.",
	"Le personnage principal hérite d'un pouvoir ancien qu'il ne comprend pas. Des forces obscures émergent de l'ombre pour soit le recruter, soit l'éliminer.",
	"Un message crypté révèle l'existence d'une prophétie oubliée. Le héros doit rassembler des alliés avant que l'équilibre du monde ne bascule définitivement.",
}

var fallbackAct2s = []string{
	"Trahisons et révélations secouent les fondements du monde. Une IA oubliée depuis des siècles manipule les évènements depuis l'ombre, utilisant l'artefact comme catalyseur de son retour.",
	"Les alliés du héros révèlent leurs vraies motivations. Une guerre secrète fait rage entre les dimensions, et le protagoniste découvre qu'il est la clé de la victoire.",
	"Le pouvoir du héros grandit mais devient incontrôlable. Ses proches commencent à le craindre tandis qu'une ancienne malédiction se réveille.",
	"La prophétie se révèle être un piège tendu par un ennemi du passé. Le héros doit choisir entre sauver ses amis ou empêcher une catastrophe mondiale.",
}

var fallbackAct3s = []string{
	"La confrontation finale oppose le héros aux forces corrompues. Des choix moraux cruciaux affectent non seulement l'issue du conflit, mais l'avenir même de la civilisation.",
	"Le héros doit sacrifier son pouvoir pour refermer le portail. Mais ce faisant, il risque de condamner les deux mondes à un destin incertain.",
	"Dans un ultime affrontement, le protagoniste doit maîtriser son pouvoir destructeur. Ses choix détermineront si le monde renaîtra ou sombrera dans le chaos éternel.",
	"La vérité sur la prophétie éclate au grand jour. Le héros doit unir ses anciens ennemis pour affronter une menace qui dépasse tout ce qu'ils imaginaient.",
}

var fallbackTwists = []string{
	"L'artefact révèle être un fragment de mémoire du héros lui-même, effacé autrefois pour empêcher une catastrophe. En le récupérant, il risque de reproduire les erreurs du passé.",
	"Le mentor du héros était en réalité l'antagoniste principal, manipulant les événements depuis le début pour atteindre ses propres objectifs.",
	"Le monde entier n'est qu'une simulation créée pour tester l'humanité. Le vrai enjeu est de prouver que l'espèce mérite de survivre dans la réalité.",
	"Le héros découvre qu'il est un clone de l'ancien sauveur du monde, créé pour réparer les erreurs de son prédécesseur.",
}

var fallbackCharacterSets = []string{
	"[Ari - Éclaireuse/Reconnaissance - Guide du groupe avec un passé mystérieux], [Kade - Technomage/Soutien - Maîtrise la fusion magie-technologie], [Sera - Archiviste/Contrôle - Gardienne des secrets anciens], [Zek - Mercenaire/Combat - Guerrier cynique avec un code d'honneur]",
	"[Luna - Hacker/Infiltration - Experte en systèmes de sécurité], [Rex - Tank/Protection - Ancien soldat reconverti], [Maya - Médic/Soins - Biologiste spécialisée en mutations], [Kai - Assassin/Dégâts - Maître des arts martiaux anciens]",
	"[Echo - Psionique/Contrôle mental - Télépathie et manipulation], [Forge - Ingénieur/Crafting - Créateur d'armes et gadgets], [Shade - Voleur/Furtivité - Spécialiste de l'infiltration], [Vex - Mage/Élémentaire - Contrôle des forces naturelles]",
	"[Nova - Pilote/Véhicules - As du combat aérien], [Cipher - Analyste/Information - Décryptage et renseignement], [Blaze - Pyromancien/Destruction - Maîtrise du feu et des explosifs], [Sage - Guérisseur/Spirituel - Connexion avec les esprits anciens]",
}

var fallbackLocationSets = []string{
	"La Verrière (cité suspendue aux structures cristallines), Les Souterrains Électriques (réseaux abandonnés où vivent les hackers), L'Observatoire Astral (tour mystique surveillant les flux magiques), Le Nexus Central (cœur technologique de la métropole)",
	"Les Jardins Flottants (oasis aérienne aux plantes bioluminescentes), La Forge Temporelle (atelier où le temps s'écoule différemment), Les Catacombes Numériques (archives virtuelles infinies), Le Sanctuaire du Vide (temple suspendu entre les dimensions)",
	"La Zone Neutre (territoire où les lois physiques sont instables), Les Tours Symbiotiques (gratte-ciels vivants), Le Marché Noir Quantique (commerce interdimensionnel), L'Arène des Âmes (colisée spirituel pour les duels psychiques)",
	"Le Port Volant (station orbitale commerciale), Les Ruines Chantantes (cité ancienne aux murs mélodiques), Le Laboratoire Perdu (complexe scientifique abandonné), La Bibliothèque Infinie (labyrinthe de connaissances)",
}

// promptVariant hashes the prompt into an index over the variant tables.
func promptVariant(prompt string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(prompt))
	return int(h.Sum32() % uint32(len(fallbackUniverses)))
}

// FallbackText assembles a complete labeled narrative for the given prompt.
// The variant is chosen deterministically from the prompt so repeated calls
// produce identical output.
func FallbackText(prompt string) string {
	v := promptVariant(prompt)
	return fmt.Sprintf(
		"Univers: %s\n\nActe I: %s\n\nActe II: %s\n\nActe III: %s\n\nTwist: %s\n\nPersonnages: %s\n\nLieux: %s",
		fallbackUniverses[v],
		fallbackAct1s[v],
		fallbackAct2s[v],
		fallbackAct3s[v],
		fallbackTwists[v],
		fallbackCharacterSets[v],
		fallbackLocationSets[v],
	)
}
