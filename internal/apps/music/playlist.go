package music

const fma = "https://files.freemusicarchive.org/storage-freemusicarchive-org/music/"

// DefaultPlaylist is the stock set of royalty-free streams
var DefaultPlaylist = []Song{
	{ID: 1, Title: "Chill Vibes", Artist: "Chillhop Music", URL: fma + "ccCommunity/Chad_Crouch/Arps/Chad_Crouch_-_Shipping_Lanes.mp3"},
	{ID: 2, Title: "Ethereal", Artist: "Kevin MacLeod", URL: fma + "no_curator/Kevin_MacLeod/Calming/Kevin_MacLeod_-_Meditation_Impromptu.mp3"},
	{ID: 3, Title: "Lo-Fi Dreams", Artist: "Blue Dot Sessions", URL: fma + "ccCommunity/Blue_Dot_Sessions/Vernonia/Blue_Dot_Sessions_-_Rain_and_Shine.mp3"},
	{ID: 4, Title: "Ambient Flow", Artist: "Scott Buckley", URL: fma + "ccCommunity/Scott_Buckley/Scott_Buckley_-_Filaments/Scott_Buckley_-_Filaments.mp3"},
	{ID: 5, Title: "Night Drive", Artist: "Lobo Loco", URL: fma + "ccCommunity/Lobo_Loco/Loco_Lounge/Lobo_Loco_-_05_-_Thai_Sunrise_ID_1082.mp3"},
	{ID: 6, Title: "Peaceful Morning", Artist: "Chad Crouch", URL: fma + "ccCommunity/Chad_Crouch/Arps/Chad_Crouch_-_Algorithms.mp3"},
	{ID: 7, Title: "Floating", Artist: "Blue Dot Sessions", URL: fma + "ccCommunity/Blue_Dot_Sessions/Bitters/Blue_Dot_Sessions_-_Pangea.mp3"},
	{ID: 8, Title: "Serenity", Artist: "Kevin MacLeod", URL: fma + "no_curator/Kevin_MacLeod/Calming/Kevin_MacLeod_-_Peaceful_Desolation.mp3"},
	{ID: 9, Title: "Deep Focus", Artist: "Scott Buckley", URL: fma + "ccCommunity/Scott_Buckley/Scott_Buckley_-_Legions/Scott_Buckley_-_Legions.mp3"},
	{ID: 10, Title: "Sunset Waves", Artist: "Lobo Loco", URL: fma + "ccCommunity/Lobo_Loco/Loco_Lounge/Lobo_Loco_-_04_-_Sitar_Sunrise_ID_1080.mp3"},
}
