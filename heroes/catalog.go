package heroes

import "github.com/CrestNiraj12/rivalsnexus/domain"

var catalog = []domain.Hero{
	{ID: "angela", Name: "Angela", RealName: "Aldrif Odinsdottir", Team: "Odinsons, Guardians of the Galaxy", Category: domain.Vanguard, Tagline: "Muscle Mommy of the Multiverse"},
	{ID: "captain-america", Name: "Captain America", RealName: "Steve Rogers", Team: "Avengers", Category: domain.Vanguard, Tagline: "Mr. I Can Do This All Day"},
	{ID: "venom", Name: "Venom", RealName: "Eddie Brock", Team: "", Category: domain.Vanguard, Tagline: "The 19- Dark Symbiote"},
	{ID: "thor", Name: "Thor", RealName: "Thor Odinson", Team: "Odinsons, Avengers, Guardians of the Galaxy", Category: domain.Vanguard, Tagline: "Need a tank to do alot of damage?"},
	{ID: "thing", Name: "The Thing", RealName: "Ben Grimm", Team: "Fantastic Four", Category: domain.Vanguard, Tagline: "Its a thing..."},
	{ID: "peni", Name: "Peni Parker", RealName: "Peni Parker", Team: "SpiderVerse", Category: domain.Vanguard, Tagline: "Potato Miner"},
	{ID: "magneto", Name: "Magneto", RealName: "Max Eisenhardt", Team: "X-Men", Category: domain.Vanguard, Tagline: "Best Tanker in the game"},
	{ID: "hulk", Name: "Hulk", RealName: "Bruce Banner", Team: "Avengers", Category: domain.Vanguard, Tagline: "Green Goliath"},
	{ID: "groot", Name: "Groot", RealName: "Groot", Team: "Guardians of the Galaxy", Category: domain.Vanguard, Tagline: "Average Fornite Players"},
	{ID: "emma-frost", Name: "Emma Frost", RealName: "Emma Frost", Team: "X-Men", Category: domain.Vanguard, Tagline: "Mommy Queen Of Gooners"},
	{ID: "doctor-strange", Name: "Doctor Strange", RealName: "Doctor Strange", Team: "Avengers", Category: domain.Vanguard, Tagline: "Im Opening a Portal to your heart,Type Shift"},
	{ID: "black-panther", Name: "Black Panther", RealName: "T'Challa", Team: "Avengers, Illuminati", Category: domain.Duelist, Tagline: "2Fast4You"},
	{ID: "blade", Name: "Blade", RealName: "Eric Brooks", Team: "Midnight-Suns", Category: domain.Duelist, Tagline: "Virgil Reincarnated But In The Hood..."},
	{ID: "black-widow", Name: "Black Widow", RealName: "Natasha Romanoff", Team: "Avengers", Category: domain.Duelist, Tagline: "Sniper Spoiler Alert"},
	{ID: "daredevil", Name: "Daredevil", RealName: "Matt Murdock", Team: "", Category: domain.Duelist, Tagline: "I- ... I See You..."},
	{ID: "humantorch", Name: "Human Torch", RealName: "Johnny Storm", Team: "Fantastic Four", Category: domain.Duelist, Tagline: "Flying Shotgun Gooner"},
	{ID: "iron-man", Name: "Iron Man", RealName: "Tony Stark", Team: "Avengers", Category: domain.Duelist, Tagline: "Genius, Billionaire, Playboy, Philanthropist."},
	{ID: "mr-fantastic", Name: "Mr. Fantastic", RealName: "Reed Richards", Team: "Fantastic Four", Category: domain.Duelist, Tagline: "Im gettin anxious... Let me stretch."},
	{ID: "moon-knight", Name: "Moon Knight", RealName: "Marc Spector, Jake Lockley, Steven Grant", Team: "Midnight-Suns", Category: domain.Duelist, Tagline: "Not schizophrenic at all, you just dont see it..."},
	{ID: "namor", Name: "Namor", RealName: "Namor Mckenzie", Team: "Illuminati", Category: domain.Duelist, Tagline: "Broken Teamup Merchant, Wha Da Flark is dev idea of teamups.."},
	{ID: "spider-man", Name: "Spider-Man", RealName: "Peter Parker", Team: "Avengers, SpiderVerse", Category: domain.Duelist, Tagline: "With Great Power Comes Great Responsibility..."},
	{ID: "phoenix", Name: "Phoenix", RealName: "Jean Grey", Team: "X-Men", Category: domain.Duelist, Tagline: "Cha Cha"},
	{ID: "squirrel-girl", Name: "Squirrel Girl", RealName: "Doreen Green", Team: "", Category: domain.Duelist, Tagline: "Im The Best DPS that takes alot of skills and lineups."},
	{ID: "magik", Name: "Magik", RealName: "Illyana Rasputina", Team: "Midnight-Suns", Category: domain.Duelist, Tagline: "I have two sides..."},
	{ID: "psylocke", Name: "Psylocke", RealName: "Sai", Team: "X-Men", Category: domain.Duelist, Tagline: "Now you see mee, now you wana stare at me~"},
	{ID: "hawkeye", Name: "Hawkeye", RealName: "Clint Barton", Team: "Avengers", Category: domain.Duelist, Tagline: "One Shot, One Kill. One Miss, One Rank Down."},
	{ID: "starlord", Name: "Star-Lord", RealName: "Peter Quill", Team: "Guardians of the Galaxy", Category: domain.Duelist, Tagline: "Useless without the Ult"},
	{ID: "scarlet-witch", Name: "Scarlet Witch", RealName: "Wanda Maximoff", Team: "Avengers, X-Men", Category: domain.Duelist, Tagline: "Reality Nuke Erasor 99999 Damage"},
	{ID: "hela", Name: "Hela", RealName: "Hela", Team: "Odinsons", Category: domain.Duelist, Tagline: "The Queen of the Underworld"},
	{ID: "iron-fist", Name: "Iron Fist", RealName: "Danny Rand", Team: "", Category: domain.Duelist, Tagline: "OraOraOraORaOraORaORa!"},
	{ID: "storm", Name: "Storm", RealName: "Ororo Munroe", Team: "X-Men", Category: domain.Duelist, Tagline: "Literal Storm is Approaching"},
	{ID: "punisher", Name: "Punisher", RealName: "Frank Castle", Team: "", Category: domain.Duelist, Tagline: "Aim = Broken Player"},
	{ID: "winter-soldier", Name: "Winter Soldier", RealName: "James Bucky Barnes", Team: "Avengers, Thunderbolts", Category: domain.Duelist, Tagline: "AAAAGAAIN! AND AGAIIIN!"},
	{ID: "wolverine", Name: "Wolverine", RealName: "James Logan Howlett", Team: "X-men", Category: domain.Duelist, Tagline: "True Breed Animal"},
	{ID: "adam-warlock", Name: "Adam Warlock", RealName: "Adam", Team: "Guardian of the Galaxy", Category: domain.Strategist, Tagline: "Dps Warlock"},
	{ID: "cloak and dagger", Name: "Cloak & Dagger", RealName: "Tyrone Johnson & Tandy Bowen", Team: "Midnight-Suns", Category: domain.Strategist, Tagline: "Its US against.. Za World!"},
	{ID: "gambit", Name: "Gambit", RealName: "Remy Lebeau", Team: "X-men", Category: domain.Strategist, Tagline: "He Never Folds"},
	{ID: "invisible-woman", Name: "Invisible Woman", RealName: "Susan Storm", Team: "Fantastic Four", Category: domain.Strategist, Tagline: "Reed Can't handle all that"},
	{ID: "luna snow", Name: "Luna Snow", RealName: "Seol Hee", Team: "", Category: domain.Strategist, Tagline: "Your One and Only Kpop Demon Huntrix... Wait wrong universe"},
	{ID: "mantis", Name: "Mantis", RealName: "Mantis", Team: "Guardians Of the Galaxy", Category: domain.Strategist, Tagline: "Synthetic Shotcaller"},
	{ID: "loki", Name: "Loki", RealName: "Loki Laufeyson", Team: "Odinsons", Category: domain.Strategist, Tagline: "God of Outplays"},
	{ID: "jeff", Name: "Jeff The Land Shark", RealName: "Jeff", Team: "secret", Category: domain.Strategist, Tagline: "The Devil That Smiles..."},
	{ID: "rocket-raccoon", Name: "Rocket Raccoon", RealName: "Rocket", Team: "Guardians of the Galaxy", Category: domain.Strategist, Tagline: "Ain't Nothin' Like Me 'Cept Me"},
	{ID: "ultron", Name: "Ultron", RealName: "Ultron", Team: "", Category: domain.Strategist, Tagline: "There Are No Strings On Me"},
}
